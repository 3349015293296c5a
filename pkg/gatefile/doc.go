// SPDX-License-Identifier: MPL-2.0

// Package gatefile provides types and parsing for gatefile.cue project
// definition files.
//
// A gatefile marks its directory as the project root and configures the
// lint tool, the virtualenv location, custom checks, and watch mode. All
// fields are optional; an empty gatefile relies entirely on discovery
// defaults.
//
// Parse and ParseBytes are the entry points. CUE validation runs through
// pkg/cueutil and stays an implementation detail.
package gatefile
