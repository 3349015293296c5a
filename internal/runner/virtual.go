// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/lintgate/lintgate/pkg/types"
)

// VirtualRunner executes scripts with the embedded POSIX interpreter
// (mvdan/sh). It needs no system shell, so script checks behave the same
// on every platform.
type VirtualRunner struct{}

// NewVirtualRunner creates a new virtual runner.
func NewVirtualRunner() *VirtualRunner {
	return &VirtualRunner{}
}

// Name returns the runner name.
func (r *VirtualRunner) Name() string {
	return string(TypeVirtual)
}

// Available returns true: the interpreter is built in.
func (r *VirtualRunner) Available() bool {
	return true
}

// Validate checks that the context carries a script with valid shell
// syntax. The virtual runner does not exec argv contexts.
func (r *VirtualRunner) Validate(ctx *ExecutionContext) error {
	if err := ctx.validateTarget(); err != nil {
		return err
	}
	if ctx.Script == "" {
		return fmt.Errorf("virtual runner executes scripts only")
	}
	if _, err := parseScript(ctx.Script); err != nil {
		return err
	}
	return nil
}

// Execute runs the script in-process, streaming output to the context's
// writers.
func (r *VirtualRunner) Execute(ctx *ExecutionContext) *Result {
	return r.run(ctx, ctx.Stdin, newStreamingOutput(ctx), nil)
}

// ExecuteCapture runs the script and captures stdout and stderr into the
// Result.
func (r *VirtualRunner) ExecuteCapture(ctx *ExecutionContext) *Result {
	out, captured := newCapturingOutput()
	return r.run(ctx, nil, out, captured)
}

func (r *VirtualRunner) run(ctx *ExecutionContext, stdin io.Reader, out *executeOutput, captured *capturedOutput) *Result {
	if ctx.Script == "" {
		return NewErrorResult(1, fmt.Errorf("virtual runner executes scripts only"))
	}

	prog, err := parseScript(ctx.Script)
	if err != nil {
		return NewErrorResult(1, err)
	}

	opts := []interp.RunnerOption{
		interp.Dir(ctx.Dir),
		interp.StdIO(stdin, out.stdout, out.stderr),
	}
	if ctx.Env != nil {
		opts = append(opts, interp.Env(expand.ListEnviron(ctx.Env...)))
	}

	sh, err := interp.New(opts...)
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to create interpreter: %w", err))
	}

	runErr := sh.Run(ctx.context(), prog)

	result := &Result{}
	if captured != nil {
		result.Output = captured.stdout.String()
		result.ErrOutput = captured.stderr.String()
	}
	if runErr != nil {
		if status, ok := errors.AsType[interp.ExitStatus](runErr); ok {
			result.ExitCode = types.ExitCode(status)
		} else {
			result.ExitCode = 1
			result.Error = fmt.Errorf("script execution failed: %w", runErr)
		}
	}

	return result
}

func parseScript(script string) (*syntax.File, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(script), "script")
	if err != nil {
		return nil, fmt.Errorf("script syntax error: %w", err)
	}
	return prog, nil
}
