// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride redirects config lookup to a test-controlled directory.
// os.UserHomeDir() ignores a re-pointed HOME on some platforms (macOS in
// CI), so tests cannot steer the default path through the environment.
var configDirOverride string

// SetConfigDirOverride points config lookup at dir instead of the user
// config directory. Test-only; pair with a deferred Reset.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// Reset clears the test override.
func Reset() {
	configDirOverride = ""
}
