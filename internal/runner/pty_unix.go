// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package runner

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/creack/pty"
)

// ExecutePTY runs the context's program attached to a pseudo-terminal, so
// tools that probe for a TTY keep their colorized, column-aware output.
// The combined terminal stream is teed to ctx.Stdout and captured into
// Result.Output (a PTY merges stdout and stderr into one stream).
func (r *NativeRunner) ExecutePTY(ctx *ExecutionContext) *Result {
	cmd, err := r.command(ctx)
	if err != nil {
		return NewErrorResult(1, err)
	}

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to start pty: %w", err))
	}
	defer func() { _ = ptmx.Close() }()

	if out, ok := ctx.Stdout.(*os.File); ok {
		// Best effort; tools fall back to 80 columns without a size.
		_ = pty.InheritSize(out, ptmx)
	}

	var captured bytes.Buffer
	// The copy ends with an EIO read error when the child closes the
	// slave side, which is the normal PTY termination signal.
	_, _ = io.Copy(io.MultiWriter(ctx.Stdout, &captured), ptmx)

	result := extractExitCode(cmd.Wait(), nil)
	result.Output = captured.String()
	return result
}

// SupportsPTY returns true on Unix-like systems.
func (r *NativeRunner) SupportsPTY() bool {
	return true
}
