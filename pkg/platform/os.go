// SPDX-License-Identifier: MPL-2.0

package platform

import "runtime"

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// IsWindows reports whether the current host is Windows.
func IsWindows() bool { return runtime.GOOS == Windows }

// ExeSuffix returns the executable filename suffix for the current host
// (".exe" on Windows, "" elsewhere). Tool resolution inside a virtualenv
// appends this when probing for the tool binary.
func ExeSuffix() string {
	return ExeSuffixFor(runtime.GOOS)
}

// ExeSuffixFor returns the executable filename suffix for the given GOOS.
// This is a pure function so tests can exercise both branches without
// depending on the host platform.
func ExeSuffixFor(goos string) string {
	if goos == Windows {
		return ".exe"
	}
	return ""
}

// VenvBinDir returns the name of the directory inside a virtualenv that
// holds entry-point executables: "Scripts" on Windows, "bin" elsewhere.
func VenvBinDir() string {
	return VenvBinDirFor(runtime.GOOS)
}

// VenvBinDirFor returns the virtualenv executable directory name for the
// given GOOS. Pure variant of VenvBinDir for deterministic tests.
func VenvBinDirFor(goos string) string {
	if goos == Windows {
		return "Scripts"
	}
	return "bin"
}
