// SPDX-License-Identifier: MPL-2.0

// Package platform holds the OS-specific knowledge the rest of the code
// leans on: OS name constants for runtime.GOOS comparisons, executable
// naming rules used when resolving tools inside a virtualenv, and
// application sandbox detection (Flatpak, Snap) used to route container
// engine invocations to the host system.
package platform
