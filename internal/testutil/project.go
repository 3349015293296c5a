// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/lintgate/lintgate/pkg/platform"
)

// FakeVenv creates a minimal virtualenv layout (bin dir plus pyvenv.cfg)
// at dir beneath root and returns the env root path. The layout is enough
// for activation; it contains no Python interpreter.
func FakeVenv(t testing.TB, root, dir string) string {
	t.Helper()

	envRoot := filepath.Join(root, dir)
	binDir := filepath.Join(envRoot, platform.VenvBinDir())
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("failed to create venv bin dir %s: %v", binDir, err)
	}

	cfg := filepath.Join(envRoot, "pyvenv.cfg")
	content := "home = /usr/bin\nversion = 3.12.0\n"
	if err := os.WriteFile(cfg, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write pyvenv.cfg: %v", err)
	}

	return envRoot
}

// FakeTool writes an executable stub named name into binDir and returns
// its path. The stub prints stdout/stderr lines when given and exits with
// exitCode. Resolution (PATH/executable-bit checks) works on every
// platform; actually running the stub requires a POSIX shell, so execution
// tests should skip on Windows.
func FakeTool(t testing.TB, binDir, name string, exitCode int, stdout, stderr string) string {
	t.Helper()

	script := "#!/bin/sh\n"
	if stdout != "" {
		script += fmt.Sprintf("echo %q\n", stdout)
	}
	if stderr != "" {
		script += fmt.Sprintf("echo %q >&2\n", stderr)
	}
	script += fmt.Sprintf("exit %d\n", exitCode)

	path := filepath.Join(binDir, name+platform.ExeSuffix())
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write fake tool %s: %v", path, err)
	}

	return path
}

// FakeProject creates a temp project root containing a gatefile with the
// given content plus a provisioned fake venv, and returns the root path.
// Pass empty content for an empty gatefile.
func FakeProject(t testing.TB, gatefileContent string) string {
	t.Helper()

	root := t.TempDir()
	path := filepath.Join(root, "gatefile.cue")
	if err := os.WriteFile(path, []byte(gatefileContent), 0o644); err != nil {
		t.Fatalf("failed to write gatefile: %v", err)
	}
	FakeVenv(t, root, ".venv")

	return root
}
