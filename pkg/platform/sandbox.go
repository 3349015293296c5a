// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"os"
	"sync"
)

// SandboxType identifies the application sandbox the process runs in, if
// any.
type SandboxType string

const (
	// SandboxNone means no sandbox was detected.
	SandboxNone SandboxType = ""
	// SandboxFlatpak means the process runs inside a Flatpak.
	SandboxFlatpak SandboxType = "flatpak"
	// SandboxSnap means the process runs inside a Snap.
	SandboxSnap SandboxType = "snap"
)

// detectOnce caches detection for the process lifetime; the sandbox cannot
// change underneath a running process.
//
// INVARIANT: detectSandboxFrom must not panic. sync.OnceValue replays a
// panic on every subsequent call, which would turn one bad detection into
// a permanent crash.
var detectOnce = sync.OnceValue(func() SandboxType {
	return detectSandboxFrom(os.Getenv, statFile)
})

// DetectSandbox reports which sandbox, if any, the process runs in.
// Flatpak is detected through /.flatpak-info, Snap through SNAP_NAME; the
// first call's answer is cached.
//
// The distinction matters to the container runtime: inside a sandbox the
// engine binary lives on the host, so the runner prefixes the engine argv
// with SpawnCommandFor and SpawnArgsFor.
func DetectSandbox() SandboxType {
	return detectOnce()
}

// IsInSandbox reports whether any sandbox was detected.
func IsInSandbox() bool {
	return DetectSandbox() != SandboxNone
}

// SpawnCommandFor returns the host-spawn binary for st, or "" when no
// spawning is needed. Pure: usable in tests without touching the cache.
func SpawnCommandFor(st SandboxType) string {
	switch st {
	case SandboxFlatpak:
		return "flatpak-spawn"
	case SandboxSnap:
		return "snap"
	default:
		return ""
	}
}

// SpawnArgsFor returns the argv prefix that makes the spawn binary run the
// following command on the host.
func SpawnArgsFor(st SandboxType) []string {
	switch st {
	case SandboxFlatpak:
		return []string{"--host"}
	case SandboxSnap:
		return []string{"run", "--shell"}
	default:
		return nil
	}
}

// detectSandboxFrom runs the detection probes through injected lookups so
// tests can simulate sandboxes without touching process state. Flatpak
// wins over Snap; /.flatpak-info exists in every Flatpak instance, and
// SNAP_NAME is exported to every snap.
func detectSandboxFrom(lookupEnv func(string) string, statFile func(string) error) SandboxType {
	if err := statFile("/.flatpak-info"); err == nil {
		return SandboxFlatpak
	}

	if lookupEnv("SNAP_NAME") != "" {
		return SandboxSnap
	}

	return SandboxNone
}

// statFile adapts os.Stat to the func(string) error probe signature.
func statFile(path string) error {
	_, err := os.Stat(path)
	return err
}
