// SPDX-License-Identifier: MPL-2.0

package gatefile

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lintgate/lintgate/pkg/types"
)

const (
	// Filename is the canonical gatefile name. Its presence marks a
	// directory as a project root.
	Filename = "gatefile.cue"

	// DefaultVenvDir is the virtualenv directory used when the gatefile
	// does not override it.
	DefaultVenvDir = ".venv"
)

// ErrInvalidVenvDir is the sentinel error wrapped by InvalidVenvDirError.
var ErrInvalidVenvDir = errors.New("invalid venv directory")

// InvalidVenvDirError is returned when a gatefile venv override is not a
// clean relative path. It wraps ErrInvalidVenvDir for errors.Is() checks.
type InvalidVenvDirError struct {
	Value string
}

func (e InvalidVenvDirError) Error() string {
	return fmt.Sprintf("invalid venv directory %q: must be a clean relative path inside the project", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e InvalidVenvDirError) Unwrap() error { return ErrInvalidVenvDir }

// Gatefile is the decoded form of a gatefile.cue. All fields are optional
// in the source file; the zero value is a valid gatefile that relies on
// defaults for everything.
type Gatefile struct {
	// Venv overrides the virtualenv directory, relative to the project
	// root. Empty means DefaultVenvDir.
	Venv string `json:"venv,omitempty"`
	// Tool configures the lint tool resolved inside the virtualenv.
	Tool *ToolSpec `json:"tool,omitempty"`
	// Checks are additional commands run after the lint tool passes.
	Checks []Check `json:"checks,omitempty"`
	// Watch configures file watching for watch mode.
	Watch *WatchConfig `json:"watch,omitempty"`

	// FilePath is the absolute path this gatefile was parsed from.
	// Set by Parse, never read from CUE.
	FilePath types.FilesystemPath `json:"-"`
}

// Root returns the project root directory, i.e. the directory containing
// the gatefile. Returns "" when the gatefile was parsed from bytes with no
// path attached.
func (g *Gatefile) Root() string {
	if g.FilePath == "" {
		return ""
	}
	return filepath.Dir(string(g.FilePath))
}

// VenvDir returns the virtualenv directory relative to the project root,
// applying the default when no override is set.
func (g *Gatefile) VenvDir() string {
	if g.Venv == "" {
		return DefaultVenvDir
	}
	return g.Venv
}

// Validate checks structural validity of the gatefile and everything it
// contains. Returns nil when valid, or a joined error naming every
// violation found.
func (g *Gatefile) Validate() error {
	var errs []error

	if g.Venv != "" && !isCleanRelative(g.Venv) {
		errs = append(errs, InvalidVenvDirError{Value: g.Venv})
	}

	if g.Tool != nil {
		if err := g.Tool.Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	seen := make(map[CheckName]bool, len(g.Checks))
	for i := range g.Checks {
		c := &g.Checks[i]
		if err := c.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("check %d: %w", i, err))
			continue
		}
		if seen[c.Name] {
			errs = append(errs, fmt.Errorf("check %d: duplicate check name %q", i, c.Name))
		}
		seen[c.Name] = true
	}

	if g.Watch != nil {
		if err := g.Watch.Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// isCleanRelative reports whether p is a relative path that stays inside
// its base directory after cleaning.
func isCleanRelative(p string) bool {
	if filepath.IsAbs(p) {
		return false
	}
	clean := filepath.Clean(filepath.FromSlash(p))
	if clean == "." || clean == ".." {
		return false
	}
	return !strings.HasPrefix(clean, ".."+string(filepath.Separator))
}
