// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"bytes"
	"errors"
	"io"
	"os/exec"

	"github.com/lintgate/lintgate/pkg/types"
)

type (
	// executeOutput configures where process output is directed during
	// execution. It abstracts the difference between streaming (to
	// ctx.Stdout/Stderr) and capturing (to buffers) execution modes.
	executeOutput struct {
		stdout io.Writer
		stderr io.Writer
	}

	// capturedOutput holds the stdout and stderr buffers in capture mode.
	capturedOutput struct {
		stdout bytes.Buffer
		stderr bytes.Buffer
	}
)

// newStreamingOutput directs output to the context's writers.
func newStreamingOutput(ctx *ExecutionContext) *executeOutput {
	return &executeOutput{stdout: ctx.Stdout, stderr: ctx.Stderr}
}

// newCapturingOutput directs output to internal buffers and returns the
// buffer holder to read results from.
func newCapturingOutput() (*executeOutput, *capturedOutput) {
	captured := &capturedOutput{}
	return &executeOutput{stdout: &captured.stdout, stderr: &captured.stderr}, captured
}

// extractExitCode turns a Run error into a Result, distinguishing a clean
// non-zero exit from infrastructure failures (spawn errors, missing
// binaries). Captured output, when present, is copied into the Result.
func extractExitCode(err error, captured *capturedOutput) *Result {
	result := &Result{}
	if captured != nil {
		result.Output = captured.stdout.String()
		result.ErrOutput = captured.stderr.String()
	}

	if err == nil {
		return result
	}

	if exitErr, ok := errors.AsType[*exec.ExitError](err); ok {
		code := types.ExitCode(exitErr.ExitCode())
		if validateErr := code.Validate(); validateErr != nil {
			result.ExitCode = 1
			result.Error = validateErr
			return result
		}
		result.ExitCode = code
		return result
	}

	result.ExitCode = 1
	result.Error = err
	return result
}
