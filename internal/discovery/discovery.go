// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lintgate/lintgate/pkg/gatefile"
	"github.com/lintgate/lintgate/pkg/types"
)

// PyprojectName is the pyproject.toml marker filename.
const PyprojectName = "pyproject.toml"

const (
	// RootMarkerGatefile indicates the root was established by a gatefile.cue.
	RootMarkerGatefile RootMarker = iota
	// RootMarkerPyproject indicates the root was established by a pyproject.toml.
	RootMarkerPyproject
	// RootMarkerVenv indicates the root was established by a .venv directory.
	RootMarkerVenv
	// RootMarkerExplicit indicates the root was given explicitly and not searched.
	RootMarkerExplicit
)

var (
	// ErrInvalidRootMarker is the sentinel error wrapped by InvalidRootMarkerError.
	ErrInvalidRootMarker = errors.New("invalid root marker")
	// ErrRootNotFound is the sentinel error wrapped by RootNotFoundError.
	ErrRootNotFound = errors.New("no project root found")
	// ErrRootMissing is the sentinel error wrapped by RootMissingError.
	ErrRootMissing = errors.New("project root missing")
	// ErrGatefileLoad is the sentinel error wrapped by GatefileLoadError.
	ErrGatefileLoad = errors.New("failed to load gatefile")
)

type (
	// RootMarker identifies which marker established the project root.
	RootMarker int

	// Project is the outcome of project root resolution.
	Project struct {
		// Root is the absolute project root directory.
		Root string
		// Marker indicates which marker established the root.
		Marker RootMarker
		// Gatefile is the parsed gatefile, nil when the root carries none.
		Gatefile *gatefile.Gatefile
		// Diagnostics are non-fatal warnings produced during resolution.
		Diagnostics []Diagnostic
	}

	// Options control project root resolution.
	Options struct {
		// ExplicitRoot pins the project root and skips the marker search.
		// The directory must exist.
		ExplicitRoot string
		// WorkDir is the directory the marker search starts from. Empty
		// means the process working directory.
		WorkDir string
	}

	// InvalidRootMarkerError is returned when a RootMarker is not one of
	// the defined values. It wraps ErrInvalidRootMarker for errors.Is()
	// checks.
	InvalidRootMarkerError struct {
		Value RootMarker
	}

	// RootNotFoundError is returned when the marker search reached the
	// filesystem root without finding any project marker. It wraps
	// ErrRootNotFound for errors.Is() checks.
	RootNotFoundError struct {
		// StartDir is the directory the search started from.
		StartDir string
	}

	// RootMissingError is returned when an explicitly given project root
	// does not exist or is not a directory. It wraps ErrRootMissing for
	// errors.Is() checks.
	RootMissingError struct {
		// Path is the explicit root as given.
		Path string
		// Cause is the underlying stat error, nil when the path exists
		// but is not a directory.
		Cause error
	}

	// GatefileLoadError is returned when a root was established but its
	// gatefile could not be read, parsed, or validated. It marks the
	// failure as a project-input problem rather than a missing root.
	GatefileLoadError struct {
		// Path is the gatefile path that failed to load.
		Path string
		// Err is the underlying read or parse error.
		Err error
	}
)

func (e InvalidRootMarkerError) Error() string {
	return fmt.Sprintf("invalid root marker %d", int(e.Value))
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e InvalidRootMarkerError) Unwrap() error { return ErrInvalidRootMarker }

func (e RootNotFoundError) Error() string {
	return fmt.Sprintf(
		"no project root found: searched from %s upward for %s, %s, or %s",
		e.StartDir, gatefile.Filename, PyprojectName, gatefile.DefaultVenvDir,
	)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e RootNotFoundError) Unwrap() error { return ErrRootNotFound }

func (e RootMissingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("project root %s: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("project root %s is not a directory", e.Path)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e RootMissingError) Unwrap() error { return ErrRootMissing }

func (e GatefileLoadError) Error() string {
	return e.Err.Error()
}

// Unwrap returns both the sentinel and the cause, so errors.Is(err,
// ErrGatefileLoad) works while the underlying parse error chain stays
// inspectable.
func (e GatefileLoadError) Unwrap() []error { return []error{ErrGatefileLoad, e.Err} }

// String returns a human-readable marker name.
func (m RootMarker) String() string {
	switch m {
	case RootMarkerGatefile:
		return "gatefile"
	case RootMarkerPyproject:
		return "pyproject"
	case RootMarkerVenv:
		return "venv"
	case RootMarkerExplicit:
		return "explicit"
	default:
		return "unknown"
	}
}

// Validate checks that the marker is one of the defined values.
func (m RootMarker) Validate() error {
	switch m {
	case RootMarkerGatefile, RootMarkerPyproject, RootMarkerVenv, RootMarkerExplicit:
		return nil
	default:
		return InvalidRootMarkerError{Value: m}
	}
}

// Resolve determines the project root and loads its gatefile when present.
//
// With an explicit root the directory must exist; no search happens.
// Otherwise the search ascends from the working directory in two passes:
// the first pass looks for a gatefile.cue in each ancestor, the second for
// a pyproject.toml or .venv directory. A gatefile anywhere above the
// working directory therefore takes precedence over a nearer weaker marker.
//
// The returned error is a RootMissingError or RootNotFoundError when no
// root could be established, or a gatefile parse error when the root's
// gatefile is malformed.
func Resolve(opts Options) (*Project, error) {
	if opts.ExplicitRoot != "" {
		return resolveExplicit(opts.ExplicitRoot)
	}

	start := opts.WorkDir
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		start = wd
	}
	absStart, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve search directory %s: %w", start, err)
	}

	if root, ok := findGatefileRoot(absStart); ok {
		return loadRoot(root, RootMarkerGatefile)
	}
	if root, marker, ok := findWeakMarkerRoot(absStart); ok {
		return loadRoot(root, marker)
	}
	return nil, RootNotFoundError{StartDir: absStart}
}

// resolveExplicit validates an explicitly given root and loads its
// gatefile. A root without any marker is accepted (it was asked for) but
// produces a warning diagnostic, since a typo'd path that happens to exist
// would otherwise fail much later with a confusing message.
func resolveExplicit(path string) (*Project, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, RootMissingError{Path: path, Cause: err}
	}
	if !info.IsDir() {
		return nil, RootMissingError{Path: path}
	}

	project, err := loadRoot(abs, RootMarkerExplicit)
	if err != nil {
		return nil, err
	}
	if project.Gatefile == nil && !hasWeakMarker(abs) {
		project.Diagnostics = append(project.Diagnostics, NewDiagnosticWithPath(
			SeverityWarning, CodeRootUnmarked,
			fmt.Sprintf("project root has no %s, %s, or %s", gatefile.Filename, PyprojectName, gatefile.DefaultVenvDir),
			abs,
		))
	}
	return project, nil
}

// loadRoot builds the Project for a resolved root, parsing the gatefile
// when one is present.
func loadRoot(root string, marker RootMarker) (*Project, error) {
	project := &Project{Root: root, Marker: marker}

	gfPath := filepath.Join(root, gatefile.Filename)
	if fileExists(gfPath) {
		gf, err := gatefile.Parse(types.FilesystemPath(gfPath))
		if err != nil {
			return nil, GatefileLoadError{Path: gfPath, Err: err}
		}
		project.Gatefile = gf
	}
	return project, nil
}

// findGatefileRoot walks from dir to the filesystem root, returning the
// first directory containing a gatefile.cue.
func findGatefileRoot(dir string) (string, bool) {
	for {
		if fileExists(filepath.Join(dir, gatefile.Filename)) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// findWeakMarkerRoot walks from dir to the filesystem root, returning the
// first directory containing a pyproject.toml or a .venv directory. The
// .venv marker uses the conventional name only; an overridden venv
// directory is only knowable from a gatefile, and a directory with a
// gatefile is found by the earlier pass.
func findWeakMarkerRoot(dir string) (string, RootMarker, bool) {
	for {
		if fileExists(filepath.Join(dir, PyprojectName)) {
			return dir, RootMarkerPyproject, true
		}
		if dirExists(filepath.Join(dir, gatefile.DefaultVenvDir)) {
			return dir, RootMarkerVenv, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", 0, false
		}
		dir = parent
	}
}

// hasWeakMarker reports whether dir contains a pyproject.toml or .venv.
func hasWeakMarker(dir string) bool {
	return fileExists(filepath.Join(dir, PyprojectName)) ||
		dirExists(filepath.Join(dir, gatefile.DefaultVenvDir))
}

// fileExists reports whether path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// dirExists reports whether path exists and is a directory.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
