// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/lintgate/lintgate/pkg/platform"
)

// Engine name constants.
const (
	EngineDocker = "docker"
	EnginePodman = "podman"
)

// ErrEngineNotFound is the sentinel error wrapped by EngineNotFoundError.
var ErrEngineNotFound = errors.New("container engine not found")

type (
	// EngineNotFoundError is returned when no usable container engine can
	// be resolved. It wraps ErrEngineNotFound for errors.Is()
	// compatibility.
	EngineNotFoundError struct {
		Preferred string
	}

	// Engine is a resolved container engine CLI. When lintgate runs inside
	// an application sandbox (Flatpak, Snap), engine invocations are
	// routed through the sandbox's host spawn mechanism so volume paths
	// resolve on the host where the engine actually runs.
	Engine struct {
		name   string
		binary string
		prefix []string
	}
)

func (e EngineNotFoundError) Error() string {
	if e.Preferred == "" {
		return "no container engine found: neither docker nor podman is available"
	}
	return fmt.Sprintf("container engine %q not found and no alternative is available", e.Preferred)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e EngineNotFoundError) Unwrap() error { return ErrEngineNotFound }

// ResolveEngine finds a usable container engine. An explicit preference
// ("docker" or "podman") is tried first with the other engine as fallback;
// with no preference podman is tried first since it is the common rootless
// setup.
func ResolveEngine(preferred string) (*Engine, error) {
	order := []string{EnginePodman, EngineDocker}
	switch preferred {
	case EngineDocker:
		order = []string{EngineDocker, EnginePodman}
	case EnginePodman, "":
	default:
		return nil, fmt.Errorf("unknown container engine %q: must be %q or %q", preferred, EngineDocker, EnginePodman)
	}

	for _, name := range order {
		if engine := newEngine(name); engine != nil {
			return engine, nil
		}
	}
	return nil, EngineNotFoundError{Preferred: preferred}
}

// newEngine builds an Engine for name, or nil when its binary cannot be
// found. Inside a sandbox the binary lives on the host, so resolution
// defers to the spawn mechanism instead of LookPath.
func newEngine(name string) *Engine {
	if st := platform.DetectSandbox(); st != platform.SandboxNone {
		return &Engine{
			name:   name,
			binary: platform.SpawnCommandFor(st),
			prefix: append(platform.SpawnArgsFor(st), name),
		}
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return nil
	}
	return &Engine{name: name, binary: path}
}

// Name returns the engine name ("docker" or "podman").
func (e *Engine) Name() string {
	return e.name
}

// Command builds an exec.Cmd invoking the engine with args, applying the
// sandbox spawn prefix when needed.
func (e *Engine) Command(ctx context.Context, args ...string) *exec.Cmd {
	full := make([]string, 0, len(e.prefix)+len(args))
	full = append(full, e.prefix...)
	full = append(full, args...)
	return exec.CommandContext(ctx, e.binary, full...)
}

// Available reports whether the engine daemon answers a version query.
func (e *Engine) Available() bool {
	return e.Command(context.Background(), "version").Run() == nil
}
