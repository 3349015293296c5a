// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lintgate/lintgate/internal/testutil"
)

func TestResolve_GatefileInWorkDir(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "gatefile.cue"), "")

	project, err := Resolve(Options{WorkDir: root})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if project.Root != root {
		t.Errorf("Root = %q, want %q", project.Root, root)
	}
	if project.Marker != RootMarkerGatefile {
		t.Errorf("Marker = %v, want %v", project.Marker, RootMarkerGatefile)
	}
	if project.Gatefile == nil {
		t.Error("Gatefile = nil, want parsed gatefile")
	}
	if len(project.Diagnostics) != 0 {
		t.Errorf("Diagnostics = %v, want none", project.Diagnostics)
	}
}

func TestResolve_DefaultsToWorkingDirectory(t *testing.T) {
	// Not parallel: changes the process working directory.

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "gatefile.cue"), "")
	restore := testutil.MustChdir(t, root)
	defer restore()

	// Getwd after the chdir gives the canonical spelling of root (tmp dirs
	// may contain symlinks), which is what Resolve reports.
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to read working directory: %v", err)
	}

	project, err := Resolve(Options{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if project.Root != wd {
		t.Errorf("Root = %q, want the working directory %q", project.Root, wd)
	}
	if project.Marker != RootMarkerGatefile {
		t.Errorf("Marker = %v, want %v", project.Marker, RootMarkerGatefile)
	}
}

func TestResolve_AscendsFromNestedDir(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "gatefile.cue"), "")
	nested := filepath.Join(root, "src", "pkg")
	testutil.MustMkdirAll(t, nested, 0o755)

	project, err := Resolve(Options{WorkDir: nested})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if project.Root != root {
		t.Errorf("Root = %q, want %q", project.Root, root)
	}
	if project.Marker != RootMarkerGatefile {
		t.Errorf("Marker = %v, want %v", project.Marker, RootMarkerGatefile)
	}
}

func TestResolve_GatefileBeatsNearerPyproject(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "gatefile.cue"), "")
	sub := filepath.Join(root, "sub")
	testutil.MustMkdirAll(t, sub, 0o755)
	writeFile(t, filepath.Join(sub, PyprojectName), "[tool.ruff]\n")

	project, err := Resolve(Options{WorkDir: sub})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if project.Root != root {
		t.Errorf("Root = %q, want gatefile root %q over nearer pyproject", project.Root, root)
	}
	if project.Marker != RootMarkerGatefile {
		t.Errorf("Marker = %v, want %v", project.Marker, RootMarkerGatefile)
	}
}

func TestResolve_PyprojectMarker(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, PyprojectName), "[project]\nname = \"demo\"\n")
	nested := filepath.Join(root, "src")
	testutil.MustMkdirAll(t, nested, 0o755)

	project, err := Resolve(Options{WorkDir: nested})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if project.Root != root {
		t.Errorf("Root = %q, want %q", project.Root, root)
	}
	if project.Marker != RootMarkerPyproject {
		t.Errorf("Marker = %v, want %v", project.Marker, RootMarkerPyproject)
	}
	if project.Gatefile != nil {
		t.Errorf("Gatefile = %+v, want nil without a gatefile", project.Gatefile)
	}
}

func TestResolve_VenvMarker(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.MustMkdirAll(t, filepath.Join(root, ".venv"), 0o755)

	project, err := Resolve(Options{WorkDir: root})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if project.Root != root {
		t.Errorf("Root = %q, want %q", project.Root, root)
	}
	if project.Marker != RootMarkerVenv {
		t.Errorf("Marker = %v, want %v", project.Marker, RootMarkerVenv)
	}
}

func TestResolve_PyprojectBeatsVenvInSameDir(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, PyprojectName), "[project]\n")
	testutil.MustMkdirAll(t, filepath.Join(root, ".venv"), 0o755)

	project, err := Resolve(Options{WorkDir: root})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if project.Marker != RootMarkerPyproject {
		t.Errorf("Marker = %v, want %v", project.Marker, RootMarkerPyproject)
	}
}

func TestResolve_NearestWeakMarkerWins(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, PyprojectName), "[project]\n")
	sub := filepath.Join(root, "sub")
	testutil.MustMkdirAll(t, filepath.Join(sub, ".venv"), 0o755)

	project, err := Resolve(Options{WorkDir: sub})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if project.Root != sub {
		t.Errorf("Root = %q, want nearest marked dir %q", project.Root, sub)
	}
	if project.Marker != RootMarkerVenv {
		t.Errorf("Marker = %v, want %v", project.Marker, RootMarkerVenv)
	}
}

func TestResolve_NoMarkers(t *testing.T) {
	t.Parallel()

	start := t.TempDir()

	_, err := Resolve(Options{WorkDir: start})
	if err == nil {
		t.Fatal("Resolve() = nil error, want RootNotFoundError")
	}
	if !errors.Is(err, ErrRootNotFound) {
		t.Errorf("error should wrap ErrRootNotFound, got: %v", err)
	}
	notFound, ok := errors.AsType[RootNotFoundError](err)
	if !ok {
		t.Fatalf("error should be a RootNotFoundError, got: %T", err)
	}
	if notFound.StartDir != start {
		t.Errorf("StartDir = %q, want %q", notFound.StartDir, start)
	}
}

func TestResolve_ExplicitRootBare(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	project, err := Resolve(Options{ExplicitRoot: root})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if project.Root != root {
		t.Errorf("Root = %q, want %q", project.Root, root)
	}
	if project.Marker != RootMarkerExplicit {
		t.Errorf("Marker = %v, want %v", project.Marker, RootMarkerExplicit)
	}
	if len(project.Diagnostics) != 1 {
		t.Fatalf("Diagnostics = %v, want exactly one unmarked-root warning", project.Diagnostics)
	}
	d := project.Diagnostics[0]
	if d.Code != CodeRootUnmarked {
		t.Errorf("Code = %q, want %q", d.Code, CodeRootUnmarked)
	}
	if d.Severity != SeverityWarning {
		t.Errorf("Severity = %q, want %q", d.Severity, SeverityWarning)
	}
	if d.Path != root {
		t.Errorf("Path = %q, want %q", d.Path, root)
	}
}

func TestResolve_ExplicitRootWithGatefile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "gatefile.cue"), "tool: {name: \"flake8\"}\n")

	project, err := Resolve(Options{ExplicitRoot: root})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if project.Marker != RootMarkerExplicit {
		t.Errorf("Marker = %v, want %v", project.Marker, RootMarkerExplicit)
	}
	if project.Gatefile == nil || project.Gatefile.Tool == nil || project.Gatefile.Tool.Name != "flake8" {
		t.Errorf("Gatefile = %+v, want parsed tool flake8", project.Gatefile)
	}
	if len(project.Diagnostics) != 0 {
		t.Errorf("Diagnostics = %v, want none for a marked root", project.Diagnostics)
	}
}

func TestResolve_ExplicitRootWithVenvMarker(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.MustMkdirAll(t, filepath.Join(root, ".venv"), 0o755)

	project, err := Resolve(Options{ExplicitRoot: root})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if project.Gatefile != nil {
		t.Errorf("Gatefile = %+v, want nil", project.Gatefile)
	}
	if len(project.Diagnostics) != 0 {
		t.Errorf("Diagnostics = %v, want none when a marker exists", project.Diagnostics)
	}
}

func TestResolve_ExplicitRootMissing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "does-not-exist")

	_, err := Resolve(Options{ExplicitRoot: path})
	if err == nil {
		t.Fatal("Resolve() = nil error, want RootMissingError")
	}
	if !errors.Is(err, ErrRootMissing) {
		t.Errorf("error should wrap ErrRootMissing, got: %v", err)
	}
	missing, ok := errors.AsType[RootMissingError](err)
	if !ok {
		t.Fatalf("error should be a RootMissingError, got: %T", err)
	}
	if missing.Path != path {
		t.Errorf("Path = %q, want %q", missing.Path, path)
	}
	if missing.Cause == nil {
		t.Error("Cause = nil, want the underlying stat error")
	}
}

func TestResolve_ExplicitRootIsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "afile")
	writeFile(t, path, "not a directory")

	_, err := Resolve(Options{ExplicitRoot: path})
	if !errors.Is(err, ErrRootMissing) {
		t.Fatalf("Resolve() error = %v, want ErrRootMissing for a file path", err)
	}
	missing, ok := errors.AsType[RootMissingError](err)
	if !ok {
		t.Fatalf("error should be a RootMissingError, got: %T", err)
	}
	if missing.Cause != nil {
		t.Errorf("Cause = %v, want nil when the path exists but is not a directory", missing.Cause)
	}
}

func TestResolve_GatefileParseError(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "gatefile.cue"), "tool: {name: 123}\n")

	_, err := Resolve(Options{WorkDir: root})
	if err == nil {
		t.Fatal("Resolve() = nil error, want gatefile parse error")
	}
	if !errors.Is(err, ErrGatefileLoad) {
		t.Errorf("Resolve() error = %v, want ErrGatefileLoad", err)
	}
	if errors.Is(err, ErrRootNotFound) || errors.Is(err, ErrRootMissing) {
		t.Errorf("parse error misclassified as root error: %v", err)
	}
	loadErr, ok := errors.AsType[GatefileLoadError](err)
	if !ok {
		t.Fatalf("Resolve() error = %T, want GatefileLoadError", err)
	}
	if loadErr.Path != filepath.Join(root, "gatefile.cue") {
		t.Errorf("GatefileLoadError.Path = %q, want gatefile path under root", loadErr.Path)
	}
}

func TestResolve_ExplicitRootWinsOverWorkDir(t *testing.T) {
	t.Parallel()

	explicit := t.TempDir()
	writeFile(t, filepath.Join(explicit, "gatefile.cue"), "")
	other := t.TempDir()
	writeFile(t, filepath.Join(other, "gatefile.cue"), "")

	project, err := Resolve(Options{ExplicitRoot: explicit, WorkDir: other})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if project.Root != explicit {
		t.Errorf("Root = %q, want explicit root %q", project.Root, explicit)
	}
	if project.Marker != RootMarkerExplicit {
		t.Errorf("Marker = %v, want %v", project.Marker, RootMarkerExplicit)
	}
}

func TestRootMarker_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		marker RootMarker
		want   string
	}{
		{RootMarkerGatefile, "gatefile"},
		{RootMarkerPyproject, "pyproject"},
		{RootMarkerVenv, "venv"},
		{RootMarkerExplicit, "explicit"},
		{RootMarker(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			if got := tt.marker.String(); got != tt.want {
				t.Errorf("RootMarker(%d).String() = %q, want %q", tt.marker, got, tt.want)
			}
		})
	}
}

func TestRootMarker_Validate(t *testing.T) {
	t.Parallel()

	for _, m := range []RootMarker{RootMarkerGatefile, RootMarkerPyproject, RootMarkerVenv, RootMarkerExplicit} {
		if err := m.Validate(); err != nil {
			t.Errorf("RootMarker(%d).Validate() = %v, want nil", m, err)
		}
	}

	for _, m := range []RootMarker{RootMarker(-1), RootMarker(99)} {
		err := m.Validate()
		if err == nil {
			t.Fatalf("RootMarker(%d).Validate() = nil, want error", m)
		}
		if !errors.Is(err, ErrInvalidRootMarker) {
			t.Errorf("error should wrap ErrInvalidRootMarker, got: %v", err)
		}
	}
}

// writeFile writes content to path, failing the test on error.
func writeFile(t testing.TB, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
