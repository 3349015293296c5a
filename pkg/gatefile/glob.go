// SPDX-License-Identifier: MPL-2.0

package gatefile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrInvalidGlobPattern is the sentinel error wrapped by InvalidGlobPatternError.
var ErrInvalidGlobPattern = errors.New("invalid glob pattern")

type (
	// GlobPattern is a doublestar-compatible glob used to select watched
	// files, e.g. "src/**/*.py". Patterns are matched against paths
	// relative to the project root, with forward slashes on all platforms.
	GlobPattern string

	// InvalidGlobPatternError is returned when a GlobPattern is empty or
	// has invalid glob syntax. It wraps ErrInvalidGlobPattern for
	// errors.Is() compatibility.
	InvalidGlobPatternError struct {
		Value GlobPattern
	}
)

func (e InvalidGlobPatternError) Error() string {
	if strings.TrimSpace(string(e.Value)) == "" {
		return "invalid glob pattern: must not be empty"
	}
	return fmt.Sprintf("invalid glob pattern %q: bad syntax", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e InvalidGlobPatternError) Unwrap() error { return ErrInvalidGlobPattern }

// Validate checks that the pattern is non-empty and is a syntactically
// valid doublestar glob.
func (p GlobPattern) Validate() error {
	if strings.TrimSpace(string(p)) == "" {
		return InvalidGlobPatternError{Value: p}
	}
	if !doublestar.ValidatePattern(string(p)) {
		return InvalidGlobPatternError{Value: p}
	}
	return nil
}

// String returns the pattern as a plain string.
func (p GlobPattern) String() string { return string(p) }

// Match reports whether the pattern matches the given slash-separated
// path. Invalid patterns never match.
func (p GlobPattern) Match(path string) bool {
	matched, err := doublestar.Match(string(p), path)
	return err == nil && matched
}
