// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/lintgate/lintgate/pkg/gatefile"
)

const (
	// ToolOriginDefault indicates no tool was configured or detected.
	ToolOriginDefault ToolOrigin = iota
	// ToolOriginGatefile indicates the gatefile named the tool.
	ToolOriginGatefile
	// ToolOriginPyproject indicates the tool was detected from pyproject.toml.
	ToolOriginPyproject
	// ToolOriginFlag indicates a command-line override named the tool.
	ToolOriginFlag
)

// ErrInvalidToolOrigin is the sentinel error wrapped by InvalidToolOriginError.
var ErrInvalidToolOrigin = errors.New("invalid tool origin")

type (
	// ToolOrigin identifies where a tool selection came from.
	ToolOrigin int

	// ToolSelection names the lint tool a project runs and the arguments
	// it runs with over the project tree.
	ToolSelection struct {
		// Name is the tool executable name.
		Name gatefile.ToolName
		// Args are the arguments the tool runs with.
		Args []string
		// Fallback is the gatefile's resolution fallback override. Empty
		// when the gatefile did not set one, so a global default can
		// still apply.
		Fallback gatefile.FallbackPolicy
		// Origin identifies where this selection came from.
		Origin ToolOrigin
	}

	// InvalidToolOriginError is returned when a ToolOrigin is not one of
	// the defined values. It wraps ErrInvalidToolOrigin for errors.Is()
	// checks.
	InvalidToolOriginError struct {
		Value ToolOrigin
	}
)

func (e InvalidToolOriginError) Error() string {
	return fmt.Sprintf("invalid tool origin %d", int(e.Value))
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e InvalidToolOriginError) Unwrap() error { return ErrInvalidToolOrigin }

// String returns a human-readable origin name.
func (o ToolOrigin) String() string {
	switch o {
	case ToolOriginDefault:
		return "default"
	case ToolOriginGatefile:
		return "gatefile"
	case ToolOriginPyproject:
		return "pyproject"
	case ToolOriginFlag:
		return "flag"
	default:
		return "unknown"
	}
}

// Validate checks that the origin is one of the defined values.
func (o ToolOrigin) Validate() error {
	switch o {
	case ToolOriginDefault, ToolOriginGatefile, ToolOriginPyproject, ToolOriginFlag:
		return nil
	default:
		return InvalidToolOriginError{Value: o}
	}
}

// knownTools lists the pyproject tool sections recognized for
// auto-detection, in precedence order, with each tool's canonical
// project-wide arguments.
var knownTools = []struct {
	section string
	name    gatefile.ToolName
	args    []string
}{
	{"ruff", "ruff", []string{"check", "."}},
	{"flake8", "flake8", []string{"."}},
	{"pylint", "pylint", []string{"."}},
}

// DefaultToolArgs returns the canonical project-wide arguments for a tool.
// Unknown tools get a bare "." so they still target the whole tree.
func DefaultToolArgs(name gatefile.ToolName) []string {
	for _, t := range knownTools {
		if t.name == name {
			return slices.Clone(t.args)
		}
	}
	return []string{"."}
}

// DefaultTool returns the selection used when nothing is configured or
// detected: ruff over the whole project.
func DefaultTool() ToolSelection {
	return ToolSelection{
		Name:   "ruff",
		Args:   []string{"check", "."},
		Origin: ToolOriginDefault,
	}
}

// SelectTool decides which lint tool a project runs, in precedence order:
// the gatefile's tool spec, a recognized tool section in pyproject.toml,
// then the ruff default. Detection problems never fail the selection; they
// surface as warning diagnostics alongside the default.
func SelectTool(project *Project) (ToolSelection, []Diagnostic) {
	if project.Gatefile != nil && project.Gatefile.Tool != nil {
		spec := project.Gatefile.Tool
		sel := ToolSelection{
			Name:     spec.Name,
			Args:     slices.Clone(spec.Args),
			Fallback: spec.Fallback,
			Origin:   ToolOriginGatefile,
		}
		if len(sel.Args) == 0 {
			sel.Args = DefaultToolArgs(spec.Name)
		}
		return sel, nil
	}
	return detectPyprojectTool(project.Root)
}

// detectPyprojectTool inspects pyproject.toml under root for a recognized
// [tool.*] section. pyproject.toml is only a hint, so an absent, unreadable,
// or malformed file yields the default selection rather than an error.
func detectPyprojectTool(root string) (ToolSelection, []Diagnostic) {
	path := filepath.Join(root, PyprojectName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultTool(), nil
		}
		return DefaultTool(), []Diagnostic{NewDiagnosticWithCause(
			SeverityWarning, CodePyprojectUnreadable,
			"failed to read pyproject.toml, using the default tool", path, err,
		)}
	}

	var doc struct {
		Tool map[string]any `toml:"tool"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return DefaultTool(), []Diagnostic{NewDiagnosticWithCause(
			SeverityWarning, CodePyprojectParseSkipped,
			"failed to parse pyproject.toml, using the default tool", path, err,
		)}
	}

	var sel ToolSelection
	var sections []string
	for _, t := range knownTools {
		if _, ok := doc.Tool[t.section]; !ok {
			continue
		}
		if sections == nil {
			sel = ToolSelection{
				Name:   t.name,
				Args:   slices.Clone(t.args),
				Origin: ToolOriginPyproject,
			}
		}
		sections = append(sections, t.section)
	}
	if sections == nil {
		return DefaultTool(), nil
	}

	var diags []Diagnostic
	if len(sections) > 1 {
		diags = append(diags, NewDiagnosticWithPath(
			SeverityWarning, CodeMultipleToolSections,
			fmt.Sprintf("pyproject.toml configures %s; running %s", strings.Join(sections, ", "), sel.Name),
			path,
		))
	}
	return sel, diags
}
