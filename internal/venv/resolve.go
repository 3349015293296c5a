// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/lintgate/lintgate/pkg/gatefile"
	"github.com/lintgate/lintgate/pkg/platform"
)

// ErrToolNotFound is the sentinel error wrapped by ToolNotFoundError.
var ErrToolNotFound = errors.New("lint tool not found")

// ToolNotFoundError is returned when a tool cannot be resolved inside the
// activated environment (nor on the system PATH, when the fallback policy
// permits that). It wraps ErrToolNotFound for errors.Is() compatibility.
type ToolNotFoundError struct {
	Tool     gatefile.ToolName
	BinDir   string
	Fallback gatefile.FallbackPolicy
}

func (e ToolNotFoundError) Error() string {
	if e.Fallback.AllowsSystem() {
		return fmt.Sprintf("tool %q not found in %s or on the system PATH", e.Tool, e.BinDir)
	}
	return fmt.Sprintf("tool %q not found in %s (system fallback disabled)", e.Tool, e.BinDir)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e ToolNotFoundError) Unwrap() error { return ErrToolNotFound }

// ResolveTool locates the named tool inside the activated environment's bin
// dir, checking that it is an executable file. When the tool is absent and
// the policy allows it, resolution falls back to the ambient system PATH.
// The returned path is what the runner should exec.
func (a *Activation) ResolveTool(name gatefile.ToolName, policy gatefile.FallbackPolicy) (string, error) {
	if err := name.Validate(); err != nil {
		return "", err
	}

	// LookPath on a path containing a separator checks that exact file
	// for existence and the executable bit (extension on Windows).
	candidate := filepath.Join(a.BinDir, name.String()+platform.ExeSuffix())
	if path, err := exec.LookPath(candidate); err == nil {
		return path, nil
	}

	if policy.AllowsSystem() {
		if path, err := exec.LookPath(name.String()); err == nil {
			return path, nil
		}
	}

	return "", ToolNotFoundError{Tool: name, BinDir: a.BinDir, Fallback: policy}
}
