// SPDX-License-Identifier: MPL-2.0

// Package config loads the per-user settings file through Viper, with CUE
// as the on-disk format.
//
// The file lives at ~/.config/lintgate/config.cue (XDG override honored;
// ~/Library/Application Support on macOS, %APPDATA% on Windows) and is
// validated against the embedded config_schema.cue before its values are
// merged over the built-in defaults. Settings cover the container engine,
// the default check runtime, the tool fallback policy, and UI behavior.
package config
