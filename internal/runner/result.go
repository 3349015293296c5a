// SPDX-License-Identifier: MPL-2.0

package runner

import "github.com/lintgate/lintgate/pkg/types"

// Result is the explicit outcome of one execution: the raw exit code plus
// any infrastructure error, and the captured output when the runner was
// asked to capture rather than stream.
type Result struct {
	// ExitCode is the raw exit code of the process.
	ExitCode types.ExitCode
	// Error contains any infrastructure error (spawn failure, bad
	// script). A clean non-zero exit leaves Error nil.
	Error error
	// Output contains captured stdout (when captured).
	Output string
	// ErrOutput contains captured stderr (when captured).
	ErrOutput string
}

// Success returns true if the process exited zero with no error.
func (r *Result) Success() bool {
	return r.ExitCode == 0 && r.Error == nil
}

// Normalized collapses the raw exit code to the binary gate signal:
// 0 stays 0, anything else (including infrastructure errors) becomes 1.
func (r *Result) Normalized() types.ExitCode {
	if r.Error != nil {
		return types.CodeLintFailure
	}
	return r.ExitCode.Normalize()
}

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code types.ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

// NewExitCodeResult creates a Result with the given exit code and no error.
// Use this for non-zero exits that represent normal process termination
// rather than infrastructure failures.
func NewExitCodeResult(code types.ExitCode) *Result {
	return &Result{ExitCode: code}
}
