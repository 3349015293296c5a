// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// NativeRunner executes programs directly and scripts through the system's
// default shell.
type NativeRunner struct {
	// Shell overrides the default shell for script execution.
	Shell string
	// ShellArgs are the arguments passed to the shell before the script.
	ShellArgs []string
}

// NewNativeRunner creates a new native runner.
func NewNativeRunner() *NativeRunner {
	return &NativeRunner{}
}

// Name returns the runner name.
func (r *NativeRunner) Name() string {
	return string(TypeNative)
}

// Available returns whether a usable shell exists. Direct argv execution
// does not need one, but script checks do, and a system without any shell
// is not a supported native host.
func (r *NativeRunner) Available() bool {
	_, err := r.getShell()
	return err == nil
}

// Validate checks that the context names exactly one execution target.
func (r *NativeRunner) Validate(ctx *ExecutionContext) error {
	return ctx.validateTarget()
}

// Execute runs the context's program or script, streaming output to the
// context's writers. The working directory and environment come from the
// context alone; the process's own cwd and env are never consulted unless
// ctx.Env is nil.
func (r *NativeRunner) Execute(ctx *ExecutionContext) *Result {
	cmd, err := r.command(ctx)
	if err != nil {
		return NewErrorResult(1, err)
	}

	out := newStreamingOutput(ctx)
	cmd.Stdout = out.stdout
	cmd.Stderr = out.stderr
	cmd.Stdin = ctx.Stdin

	return extractExitCode(cmd.Run(), nil)
}

// ExecuteCapture runs the context and captures stdout and stderr into the
// Result instead of streaming.
func (r *NativeRunner) ExecuteCapture(ctx *ExecutionContext) *Result {
	cmd, err := r.command(ctx)
	if err != nil {
		return NewErrorResult(1, err)
	}

	out, captured := newCapturingOutput()
	cmd.Stdout = out.stdout
	cmd.Stderr = out.stderr
	cmd.Stdin = ctx.Stdin

	return extractExitCode(cmd.Run(), captured)
}

// command builds the exec.Cmd for the context: a direct exec for argv
// contexts, shell -c for script contexts.
func (r *NativeRunner) command(ctx *ExecutionContext) (*exec.Cmd, error) {
	if err := ctx.validateTarget(); err != nil {
		return nil, err
	}

	var cmd *exec.Cmd
	if len(ctx.Argv) > 0 {
		cmd = exec.CommandContext(ctx.context(), ctx.Argv[0], ctx.Argv[1:]...)
	} else {
		shell, err := r.getShell()
		if err != nil {
			return nil, err
		}
		args := append(r.getShellArgs(shell), ctx.Script)
		cmd = exec.CommandContext(ctx.context(), shell, args...)
	}

	cmd.Dir = ctx.Dir
	if ctx.Env != nil {
		cmd.Env = ctx.Env
	}

	return cmd, nil
}

// getShell determines which shell to use for script execution.
func (r *NativeRunner) getShell() (string, error) {
	if r.Shell != "" {
		return r.Shell, nil
	}

	switch runtime.GOOS {
	case "windows":
		if pwsh, err := exec.LookPath("pwsh"); err == nil {
			return pwsh, nil
		}
		if ps, err := exec.LookPath("powershell"); err == nil {
			return ps, nil
		}
		return exec.LookPath("cmd")
	default:
		if shell := os.Getenv("SHELL"); shell != "" {
			return shell, nil
		}
		if bash, err := exec.LookPath("bash"); err == nil {
			return bash, nil
		}
		if sh, err := exec.LookPath("sh"); err == nil {
			return sh, nil
		}
		return "", fmt.Errorf("no shell found")
	}
}

// getShellArgs returns the arguments that make the shell run a script
// string.
func (r *NativeRunner) getShellArgs(shell string) []string {
	if len(r.ShellArgs) > 0 {
		return r.ShellArgs
	}

	base := filepath.Base(shell)
	// Handle Windows path separators when running on Unix.
	if lastSlash := strings.LastIndex(base, `\`); lastSlash >= 0 {
		base = base[lastSlash+1:]
	}
	base = strings.TrimSuffix(base, ".exe")
	switch base {
	case "cmd":
		return []string{"/C"}
	case "powershell", "pwsh":
		return []string{"-NoProfile", "-Command"}
	default:
		// Assume POSIX shell
		return []string{"-c"}
	}
}
