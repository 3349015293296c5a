// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/lintgate/lintgate/internal/app/check"
	"github.com/lintgate/lintgate/internal/discovery"
	"github.com/lintgate/lintgate/internal/issue"
	"github.com/lintgate/lintgate/internal/report"
	"github.com/lintgate/lintgate/pkg/types"
)

func TestCheckCommand_RequestMapping(t *testing.T) {
	t.Parallel()

	fake := &fakeGateService{runReport: passReport("/proj")}
	app, _, _ := newTestApp(t, fake)

	err := execCommand(t, app,
		"check", "--project", "/proj", "--runtime", "container", "--tool", "flake8",
		"--pty", "--no-checks", "--keep-going", "--output", "json", "--verbose")
	if err != nil {
		t.Fatalf("execute error = %v", err)
	}

	want := check.Request{
		ExplicitRoot:    "/proj",
		RuntimeOverride: "container",
		Tool:            "flake8",
		PTY:             true,
		NoChecks:        true,
		KeepGoing:       true,
		CaptureOutput:   true,
		Verbose:         true,
	}
	if fake.runReq != want {
		t.Errorf("Request = %+v, want %+v", fake.runReq, want)
	}
}

func TestCheckCommand_TextFormatStreams(t *testing.T) {
	t.Parallel()

	fake := &fakeGateService{runReport: passReport("/proj")}
	app, _, _ := newTestApp(t, fake)

	if err := execCommand(t, app, "check"); err != nil {
		t.Fatalf("execute error = %v", err)
	}
	if fake.runReq.CaptureOutput {
		t.Error("text format should stream tool output, not capture it")
	}
}

func TestCheckCommand_PassWritesReport(t *testing.T) {
	t.Parallel()

	fake := &fakeGateService{runReport: passReport("/proj")}
	app, stdout, _ := newTestApp(t, fake)

	if err := execCommand(t, app, "check"); err != nil {
		t.Fatalf("execute error = %v", err)
	}
	if !strings.Contains(stdout.String(), "PASS") {
		t.Errorf("stdout = %q, want the PASS verdict line", stdout.String())
	}
}

func TestCheckCommand_FailCarriesExitCode(t *testing.T) {
	t.Parallel()

	rep := passReport("/proj")
	rep.Verdict = report.VerdictFail
	rep.ExitCode = types.CodeLintFailure
	fake := &fakeGateService{runReport: rep}
	app, stdout, _ := newTestApp(t, fake)

	err := execCommand(t, app, "check")
	exitErr, ok := errors.AsType[*ExitError](err)
	if !ok {
		t.Fatalf("execute error = %T, want *ExitError", err)
	}
	if exitErr.Code != types.CodeLintFailure {
		t.Errorf("Code = %v, want CodeLintFailure", exitErr.Code)
	}
	if !strings.Contains(stdout.String(), "FAIL") {
		t.Errorf("stdout = %q, want the FAIL verdict line", stdout.String())
	}
}

func TestCheckCommand_JSONReport(t *testing.T) {
	t.Parallel()

	fake := &fakeGateService{runReport: passReport("/proj")}
	app, stdout, _ := newTestApp(t, fake)

	if err := execCommand(t, app, "check", "--output", "json"); err != nil {
		t.Fatalf("execute error = %v", err)
	}

	var decoded report.Report
	if err := json.Unmarshal(stdout.Bytes(), &decoded); err != nil {
		t.Fatalf("stdout is not valid JSON: %v\n%s", err, stdout.String())
	}
	if decoded.Root != "/proj" {
		t.Errorf("Root = %q, want /proj", decoded.Root)
	}
	if decoded.Verdict != report.VerdictPass {
		t.Errorf("Verdict = %q, want pass", decoded.Verdict)
	}
}

func TestCheckCommand_InvalidOutputFormat(t *testing.T) {
	t.Parallel()

	fake := &fakeGateService{}
	app, _, _ := newTestApp(t, fake)

	err := execCommand(t, app, "check", "--output", "xml")
	exitErr, ok := errors.AsType[*ExitError](err)
	if !ok {
		t.Fatalf("execute error = %T, want *ExitError", err)
	}
	if exitErr.Code != types.CodeConfigError {
		t.Errorf("Code = %v, want CodeConfigError", exitErr.Code)
	}
	if fake.runCalled {
		t.Error("the pipeline should not run on a bad flag value")
	}
}

func TestCheckCommand_EnvironmentErrorExitCode(t *testing.T) {
	t.Parallel()

	fake := &fakeGateService{
		runErr: &check.GateError{
			Code:    types.CodeEnvironmentError,
			IssueID: issue.VenvNotFoundId,
			Err:     errors.New("virtual environment not found at /proj/.venv"),
		},
	}
	app, _, stderr := newTestApp(t, fake)

	err := execCommand(t, app, "check")
	exitErr, ok := errors.AsType[*ExitError](err)
	if !ok {
		t.Fatalf("execute error = %T, want *ExitError", err)
	}
	if exitErr.Code != types.CodeEnvironmentError {
		t.Errorf("Code = %v, want CodeEnvironmentError", exitErr.Code)
	}
	if !strings.Contains(stderr.String(), "virtual environment not found") {
		t.Errorf("stderr = %q, want the underlying error message", stderr.String())
	}
}

func TestCheckCommand_ConfigErrorExitCode(t *testing.T) {
	t.Parallel()

	fake := &fakeGateService{
		runErr: &check.GateError{
			Code: types.CodeConfigError,
			Err:  errors.New("invalid runtime mode \"sandbox\""),
		},
	}
	app, _, stderr := newTestApp(t, fake)

	err := execCommand(t, app, "check")
	exitErr, ok := errors.AsType[*ExitError](err)
	if !ok {
		t.Fatalf("execute error = %T, want *ExitError", err)
	}
	if exitErr.Code != types.CodeConfigError {
		t.Errorf("Code = %v, want CodeConfigError", exitErr.Code)
	}
	if !strings.Contains(stderr.String(), "invalid runtime mode") {
		t.Errorf("stderr = %q, want the underlying error message", stderr.String())
	}
}

func TestCheckCommand_RendersDiagnostics(t *testing.T) {
	t.Parallel()

	fake := &fakeGateService{
		runReport: passReport("/proj"),
		runDiags: []discovery.Diagnostic{
			{Severity: discovery.SeverityWarning, Message: "pyproject.toml is unreadable"},
		},
	}
	app, _, stderr := newTestApp(t, fake)

	if err := execCommand(t, app, "check"); err != nil {
		t.Fatalf("execute error = %v", err)
	}
	if !strings.Contains(stderr.String(), "pyproject.toml is unreadable") {
		t.Errorf("stderr = %q, want the diagnostic message", stderr.String())
	}
}

func TestCheckCommand_RejectsPositionalArgs(t *testing.T) {
	t.Parallel()

	fake := &fakeGateService{}
	app, _, _ := newTestApp(t, fake)

	if err := execCommand(t, app, "check", "src/"); err == nil {
		t.Fatal("positional arguments should be rejected; the gate always covers the whole tree")
	}
	if fake.runCalled {
		t.Error("the pipeline should not run on bad usage")
	}
}
