// SPDX-License-Identifier: MPL-2.0

// Package runner provides the process execution layer: the Runner interface
// and its native, virtual, and container implementations.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/lintgate/lintgate/pkg/gatefile"
)

// Runner type constants for the different execution environments.
const (
	TypeNative    Type = Type(gatefile.RuntimeNative)
	TypeVirtual   Type = Type(gatefile.RuntimeVirtual)
	TypeContainer Type = Type(gatefile.RuntimeContainer)
)

type (
	// Type identifies a runner implementation.
	Type string

	// ExecutionContext contains everything a Runner needs for one
	// invocation. Exactly one of Argv or Script is set: Argv execs a
	// resolved program directly (the lint tool), Script runs shell source
	// (a custom check).
	ExecutionContext struct {
		// Argv is the program path and its arguments.
		Argv []string
		// Script is shell source to run instead of Argv.
		Script string
		// Dir is the working directory for the process, always the
		// resolved project root. The caller's cwd is never used.
		Dir string
		// Env is the complete environment for the process as "KEY=VALUE"
		// entries, normally produced by venv.Activation.Environ. A nil
		// Env inherits the host environment.
		Env []string
		// Context is the Go context for cancellation.
		Context context.Context
		// Stdout is where standard output streams.
		Stdout io.Writer
		// Stderr is where standard error streams.
		Stderr io.Writer
		// Stdin is the standard input.
		Stdin io.Reader
	}

	// Runner defines the interface for process execution.
	Runner interface {
		// Name returns the runner name.
		Name() string
		// Execute runs the context's program or script, streaming output.
		Execute(ctx *ExecutionContext) *Result
		// Available returns whether this runner can work on the current
		// system.
		Available() bool
		// Validate checks whether the context can be executed by this
		// runner.
		Validate(ctx *ExecutionContext) error
	}

	// CapturingRunner is implemented by runners that can buffer output
	// instead of streaming it.
	CapturingRunner interface {
		// ExecuteCapture runs the context and captures stdout/stderr into
		// the Result.
		ExecuteCapture(ctx *ExecutionContext) *Result
	}

	// Registry holds the configured runners by type.
	Registry struct {
		runners map[Type]Runner
	}
)

// NewExecutionContext creates an execution context bound to dir with the
// given environment, wired to the process's standard streams.
func NewExecutionContext(dir string, env []string) *ExecutionContext {
	return &ExecutionContext{
		Dir:     dir,
		Env:     env,
		Context: context.Background(),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Stdin:   os.Stdin,
	}
}

// validateTarget checks the Argv/Script exclusivity shared by all runners.
func (ctx *ExecutionContext) validateTarget() error {
	if len(ctx.Argv) == 0 && ctx.Script == "" {
		return fmt.Errorf("nothing to execute: neither argv nor script set")
	}
	if len(ctx.Argv) > 0 && ctx.Script != "" {
		return fmt.Errorf("ambiguous execution target: both argv and script set")
	}
	return nil
}

// context returns the Go context, defaulting to Background.
func (ctx *ExecutionContext) context() context.Context {
	if ctx.Context == nil {
		return context.Background()
	}
	return ctx.Context
}

// NewRegistry creates an empty runner registry.
func NewRegistry() *Registry {
	return &Registry{runners: make(map[Type]Runner)}
}

// Register adds a runner to the registry.
func (r *Registry) Register(typ Type, rn Runner) {
	r.runners[typ] = rn
}

// Get returns a runner by type.
func (r *Registry) Get(typ Type) (Runner, error) {
	rn, ok := r.runners[typ]
	if !ok {
		return nil, fmt.Errorf("runner %q not registered", typ)
	}
	return rn, nil
}

// Available returns the types of all registered runners that report
// themselves available.
func (r *Registry) Available() []Type {
	var types []Type
	for typ, rn := range r.runners {
		if rn.Available() {
			types = append(types, typ)
		}
	}
	return types
}

// Execute runs the context on the runner registered for typ, checking
// availability and validity first.
func (r *Registry) Execute(typ Type, ctx *ExecutionContext) *Result {
	rn, err := r.checked(typ, ctx)
	if err != nil {
		return NewErrorResult(1, err)
	}
	return rn.Execute(ctx)
}

// ExecuteCapture runs the context on the runner registered for typ and
// captures its output into the Result. Runners that cannot capture
// stream instead.
func (r *Registry) ExecuteCapture(typ Type, ctx *ExecutionContext) *Result {
	rn, err := r.checked(typ, ctx)
	if err != nil {
		return NewErrorResult(1, err)
	}
	if cr, ok := rn.(CapturingRunner); ok {
		return cr.ExecuteCapture(ctx)
	}
	return rn.Execute(ctx)
}

// checked looks up the runner for typ and verifies it can execute the
// context.
func (r *Registry) checked(typ Type, ctx *ExecutionContext) (Runner, error) {
	rn, err := r.Get(typ)
	if err != nil {
		return nil, err
	}
	if !rn.Available() {
		return nil, fmt.Errorf("runner %q is not available on this system", rn.Name())
	}
	if err := rn.Validate(ctx); err != nil {
		return nil, err
	}
	return rn, nil
}
