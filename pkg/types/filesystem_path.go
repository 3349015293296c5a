// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFilesystemPath is the sentinel error wrapped by InvalidFilesystemPathError.
var ErrInvalidFilesystemPath = errors.New("invalid filesystem path")

type (
	// FilesystemPath is a path on disk, absolute or relative. The zero
	// value ("") is invalid; so is a whitespace-only string.
	FilesystemPath string

	// InvalidFilesystemPathError reports a FilesystemPath that does not
	// point anywhere. It wraps ErrInvalidFilesystemPath for errors.Is.
	InvalidFilesystemPathError struct {
		Value FilesystemPath
	}
)

// String returns the path as a plain string.
func (p FilesystemPath) String() string { return string(p) }

// Validate rejects empty and whitespace-only paths.
func (p FilesystemPath) Validate() error {
	if strings.TrimSpace(string(p)) == "" {
		return &InvalidFilesystemPathError{Value: p}
	}
	return nil
}

func (e *InvalidFilesystemPathError) Error() string {
	return fmt.Sprintf("invalid filesystem path %q: empty or whitespace-only", e.Value)
}

// Unwrap returns the sentinel so errors.Is matches.
func (e *InvalidFilesystemPathError) Unwrap() error { return ErrInvalidFilesystemPath }
