// SPDX-License-Identifier: MPL-2.0

package check

import (
	"context"
	"slices"

	"github.com/lintgate/lintgate/internal/config"
	"github.com/lintgate/lintgate/internal/discovery"
	"github.com/lintgate/lintgate/internal/issue"
	"github.com/lintgate/lintgate/pkg/types"
)

// EnvironmentPlan describes what a gate run would execute and under which
// environment, without executing anything.
type EnvironmentPlan struct {
	// Root is the absolute project root.
	Root string `json:"root" yaml:"root"`
	// Marker names the marker that established the root.
	Marker string `json:"marker" yaml:"marker"`
	// Tool is the selected lint tool.
	Tool string `json:"tool" yaml:"tool"`
	// ToolArgs are the arguments the tool would run with.
	ToolArgs []string `json:"tool_args" yaml:"tool_args"`
	// ToolOrigin names where the tool selection came from.
	ToolOrigin string `json:"tool_origin" yaml:"tool_origin"`
	// Runtime is the resolved runtime mode for the tool run.
	Runtime string `json:"runtime" yaml:"runtime"`
	// EnvDir is the absolute virtualenv directory. Empty when the run is
	// fully containerized and never activates an environment.
	EnvDir string `json:"env_dir,omitempty" yaml:"env_dir,omitempty"`
	// PathEntry is the executable directory the activation prepends to
	// PATH. Empty when no activation happens.
	PathEntry string `json:"path_entry,omitempty" yaml:"path_entry,omitempty"`
	// ToolPath is the resolved tool executable for host runs. Empty for a
	// containerized tool run, which takes the tool from the image.
	ToolPath string `json:"tool_path,omitempty" yaml:"tool_path,omitempty"`
}

// Inspect resolves the run plan without executing it. It walks the same
// pre-invocation stages as Run, so its failures carry the same exit
// classes a real run would terminate with.
func (s *gateService) Inspect(ctx context.Context, req Request) (*EnvironmentPlan, []discovery.Diagnostic, error) {
	cfg, err := s.config.Load(ctx, config.LoadOptions{
		ConfigFilePath: types.FilesystemPath(req.ConfigPath),
	})
	if err != nil {
		return nil, nil, newGateError(types.CodeConfigError, issue.ConfigLoadFailedId, err)
	}

	project, err := discovery.Resolve(discovery.Options{
		ExplicitRoot: req.ExplicitRoot,
		WorkDir:      req.WorkDir,
	})
	if err != nil {
		return nil, nil, classifyResolveError(err)
	}
	diags := project.Diagnostics

	p := &pipeline{svc: s, req: req, cfg: cfg, project: project, logger: s.runLogger(req)}

	toolDiags, gerr := p.selectTool()
	diags = append(diags, toolDiags...)
	if gerr != nil {
		return nil, diags, gerr
	}
	if gerr := p.resolveRuntimes(); gerr != nil {
		return nil, diags, gerr
	}
	if gerr := p.preflight(); gerr != nil {
		return nil, diags, gerr
	}

	plan := &EnvironmentPlan{
		Root:       project.Root,
		Marker:     project.Marker.String(),
		Tool:       string(p.selection.Name),
		ToolArgs:   slices.Clone(p.selection.Args),
		ToolOrigin: p.selection.Origin.String(),
		Runtime:    string(p.toolRuntime.Mode()),
		ToolPath:   p.toolPath,
	}
	if p.activation != nil {
		plan.EnvDir = p.activation.Root
		plan.PathEntry = p.activation.BinDir
	}
	return plan, diags, nil
}
