// SPDX-License-Identifier: MPL-2.0

package check

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/lintgate/lintgate/internal/discovery"
	"github.com/lintgate/lintgate/internal/issue"
	"github.com/lintgate/lintgate/internal/venv"
	"github.com/lintgate/lintgate/pkg/gatefile"
	"github.com/lintgate/lintgate/pkg/types"
)

func TestGateError_ErrorAndUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("underlying failure")
	gerr := newGateError(types.CodeEnvironmentError, issue.VenvNotFoundId, cause)

	if gerr.Error() != "underlying failure" {
		t.Errorf("Error() = %q, want cause message", gerr.Error())
	}
	if !errors.Is(gerr, cause) {
		t.Error("errors.Is() should find the wrapped cause")
	}
	if gerr.Code != types.CodeEnvironmentError {
		t.Errorf("Code = %v, want CodeEnvironmentError", gerr.Code)
	}
	if gerr.IssueID != issue.VenvNotFoundId {
		t.Errorf("IssueID = %v, want VenvNotFoundId", gerr.IssueID)
	}
}

func TestNewGateError_NilErrPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("newGateError(nil) should panic")
		}
	}()
	newGateError(types.CodeConfigError, 0, nil)
}

func TestClassifyResolveError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		wantCode  types.ExitCode
		wantIssue issue.Id
	}{
		{
			name:      "root not found",
			err:       discovery.RootNotFoundError{StartDir: "/work"},
			wantCode:  types.CodeEnvironmentError,
			wantIssue: issue.ProjectRootNotFoundId,
		},
		{
			name:      "explicit root missing",
			err:       discovery.RootMissingError{Path: "/absent"},
			wantCode:  types.CodeEnvironmentError,
			wantIssue: issue.ProjectRootNotFoundId,
		},
		{
			name:      "bad gatefile",
			err:       discovery.GatefileLoadError{Path: "/work/gatefile.cue", Err: errors.New("bad cue")},
			wantCode:  types.CodeConfigError,
			wantIssue: issue.GatefileParseErrorId,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gerr := classifyResolveError(tt.err)
			if gerr.Code != tt.wantCode {
				t.Errorf("Code = %v, want %v", gerr.Code, tt.wantCode)
			}
			if gerr.IssueID != tt.wantIssue {
				t.Errorf("IssueID = %v, want %v", gerr.IssueID, tt.wantIssue)
			}
			if !errors.Is(gerr, tt.err) {
				t.Error("classification should preserve the cause chain")
			}
		})
	}
}

func TestClassifyVenvError(t *testing.T) {
	t.Parallel()

	gerr := classifyVenvError(venv.EnvNotFoundError{Path: "/work/.venv"})
	if gerr.Code != types.CodeEnvironmentError || gerr.IssueID != issue.VenvNotFoundId {
		t.Errorf("missing env classified as (%v, %v), want (3, VenvNotFoundId)", gerr.Code, gerr.IssueID)
	}

	gerr = classifyVenvError(venv.EnvInvalidError{Path: "/work/.venv", Reason: "missing pyvenv.cfg"})
	if gerr.Code != types.CodeEnvironmentError || gerr.IssueID != issue.VenvInvalidId {
		t.Errorf("broken env classified as (%v, %v), want (3, VenvInvalidId)", gerr.Code, gerr.IssueID)
	}
}

func TestClassifyToolResolveError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		wantCode  types.ExitCode
		wantIssue issue.Id
	}{
		{
			name:      "tool not found in venv",
			err:       venv.ToolNotFoundError{Tool: "ruff", BinDir: "/work/.venv/bin"},
			wantCode:  types.CodeEnvironmentError,
			wantIssue: issue.ToolNotFoundId,
		},
		{
			name:      "invalid tool name",
			err:       gatefile.InvalidToolNameError{Value: "bad/tool"},
			wantCode:  types.CodeConfigError,
			wantIssue: 0,
		},
		{
			name:      "permission denied",
			err:       fmt.Errorf("open tool: %w", os.ErrPermission),
			wantCode:  types.CodeEnvironmentError,
			wantIssue: issue.PermissionDeniedId,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gerr := classifyToolResolveError(tt.err)
			if gerr.Code != tt.wantCode {
				t.Errorf("Code = %v, want %v", gerr.Code, tt.wantCode)
			}
			if gerr.IssueID != tt.wantIssue {
				t.Errorf("IssueID = %v, want %v", gerr.IssueID, tt.wantIssue)
			}
		})
	}
}
