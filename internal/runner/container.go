// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"fmt"
	"path/filepath"
)

// WorkspaceMount is where the project root is mounted inside check
// containers.
const WorkspaceMount = "/workspace"

// ContainerRunner executes check scripts inside a disposable container.
// The project root is mounted read-write at WorkspaceMount and the script
// runs there via the image's /bin/sh. The host environment does not leak
// into the container; the image supplies the toolchain.
type ContainerRunner struct {
	engine *Engine
	// Image is the container image to run. A per-check image override on
	// the execution replaces it.
	Image string
}

// NewContainerRunner creates a container runner on the given engine.
func NewContainerRunner(engine *Engine, image string) *ContainerRunner {
	return &ContainerRunner{engine: engine, Image: image}
}

// Name returns the runner name.
func (r *ContainerRunner) Name() string {
	return string(TypeContainer)
}

// Available reports whether the engine is usable.
func (r *ContainerRunner) Available() bool {
	return r.engine != nil && r.engine.Available()
}

// Validate checks that the context carries a script and that an image is
// configured.
func (r *ContainerRunner) Validate(ctx *ExecutionContext) error {
	if err := ctx.validateTarget(); err != nil {
		return err
	}
	if ctx.Script == "" {
		return fmt.Errorf("container runner executes scripts only")
	}
	if r.Image == "" {
		return fmt.Errorf("container runner requires an image")
	}
	if ctx.Dir == "" || !filepath.IsAbs(ctx.Dir) {
		return fmt.Errorf("container runner requires an absolute project directory, got %q", ctx.Dir)
	}
	return nil
}

// Execute runs the script inside a disposable container, streaming output.
// The container's exit code is the script's exit code; engine-level
// failures surface as codes 125-127, which the caller may inspect with
// ExitCode.IsTransient.
func (r *ContainerRunner) Execute(ctx *ExecutionContext) *Result {
	if err := r.Validate(ctx); err != nil {
		return NewErrorResult(1, err)
	}

	cmd := r.engine.Command(ctx.context(), r.runArgs(ctx)...)
	cmd.Stdout = ctx.Stdout
	cmd.Stderr = ctx.Stderr
	cmd.Stdin = ctx.Stdin

	return extractExitCode(cmd.Run(), nil)
}

// ExecuteCapture runs the script in a container and captures output.
func (r *ContainerRunner) ExecuteCapture(ctx *ExecutionContext) *Result {
	if err := r.Validate(ctx); err != nil {
		return NewErrorResult(1, err)
	}

	cmd := r.engine.Command(ctx.context(), r.runArgs(ctx)...)
	out, captured := newCapturingOutput()
	cmd.Stdout = out.stdout
	cmd.Stderr = out.stderr

	return extractExitCode(cmd.Run(), captured)
}

// runArgs builds the `run` argv: a disposable container with the project
// mounted at WorkspaceMount as its working directory.
func (r *ContainerRunner) runArgs(ctx *ExecutionContext) []string {
	return []string{
		"run", "--rm",
		"--volume", ctx.Dir + ":" + WorkspaceMount,
		"--workdir", WorkspaceMount,
		r.Image,
		"/bin/sh", "-c", ctx.Script,
	}
}
