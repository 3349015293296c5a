// SPDX-License-Identifier: MPL-2.0

package check

import (
	"errors"
	"os"

	"github.com/lintgate/lintgate/internal/discovery"
	"github.com/lintgate/lintgate/internal/issue"
	"github.com/lintgate/lintgate/internal/venv"
	"github.com/lintgate/lintgate/pkg/gatefile"
	"github.com/lintgate/lintgate/pkg/types"
)

// GateError classifies a pipeline failure that occurred before the lint
// tool was invoked. It carries the exit class the process must terminate
// with and the issue-catalog entry that explains the failure.
type GateError struct {
	// Code is the exit class: CodeConfigError or CodeEnvironmentError.
	Code types.ExitCode
	// IssueID selects the issue-catalog entry rendered for this failure.
	// Zero means no catalog entry applies and only Err is shown.
	IssueID issue.Id
	// Err is the underlying failure.
	Err error
}

// newGateError creates a GateError. err must not be nil; a nil err is a
// programming error and panics.
func newGateError(code types.ExitCode, id issue.Id, err error) *GateError {
	if err == nil {
		panic("newGateError: err must not be nil")
	}
	return &GateError{Code: code, IssueID: id, Err: err}
}

// Error implements the error interface for GateError.
func (e *GateError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is/As traversal.
func (e *GateError) Unwrap() error {
	return e.Err
}

// classifyResolveError maps a root-resolution failure to its exit class:
// a bad gatefile is a project configuration error, everything else means
// no usable root and is an environment error.
func classifyResolveError(err error) *GateError {
	if errors.Is(err, discovery.ErrGatefileLoad) {
		return newGateError(types.CodeConfigError, issue.GatefileParseErrorId, err)
	}
	return newGateError(types.CodeEnvironmentError, issue.ProjectRootNotFoundId, err)
}

// classifyVenvError maps an activation failure to its issue entry.
func classifyVenvError(err error) *GateError {
	if errors.Is(err, venv.ErrEnvNotFound) {
		return newGateError(types.CodeEnvironmentError, issue.VenvNotFoundId, err)
	}
	return newGateError(types.CodeEnvironmentError, issue.VenvInvalidId, err)
}

// classifyToolResolveError maps a tool-resolution failure to its exit
// class. Invalid names or policies are input errors; a missing executable
// is an environment error.
func classifyToolResolveError(err error) *GateError {
	switch {
	case errors.Is(err, gatefile.ErrInvalidToolName),
		errors.Is(err, gatefile.ErrInvalidFallbackPolicy):
		return newGateError(types.CodeConfigError, 0, err)
	case errors.Is(err, os.ErrPermission):
		return newGateError(types.CodeEnvironmentError, issue.PermissionDeniedId, err)
	default:
		return newGateError(types.CodeEnvironmentError, issue.ToolNotFoundId, err)
	}
}
