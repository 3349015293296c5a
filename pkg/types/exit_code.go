// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

// Gate exit classes. The lintgate process exit code is always one of these
// four values; raw tool exit codes are preserved inside the run report but
// normalized at the process boundary.
const (
	// CodeSuccess means the lint tool and all custom checks passed.
	CodeSuccess ExitCode = 0
	// CodeLintFailure is the normalized failure signal: the lint tool (or a
	// custom check) exited non-zero, whatever its raw status was.
	CodeLintFailure ExitCode = 1
	// CodeConfigError means lintgate could not act on its inputs: bad config
	// file, bad gatefile, bad flag value.
	CodeConfigError ExitCode = 2
	// CodeEnvironmentError means a step before tool invocation failed: the
	// project root does not exist, the virtualenv is missing or malformed,
	// or the tool could not be resolved inside it.
	CodeEnvironmentError ExitCode = 3
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode is a process exit status. POSIX constrains it to 0-255;
	// zero means success.
	ExitCode int

	// InvalidExitCodeError reports an ExitCode outside 0-255. It wraps
	// ErrInvalidExitCode for errors.Is.
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns the sentinel so errors.Is matches.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate rejects codes outside the POSIX 0-255 range.
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess reports whether the code means a clean exit.
func (c ExitCode) IsSuccess() bool { return c == 0 }

// IsTransient reports whether the code is a container engine failure worth
// retrying (125: engine error, 126: command not executable in image).
func (c ExitCode) IsTransient() bool { return c == 125 || c == 126 }

// Normalize collapses any non-zero exit code into CodeLintFailure. The gate
// verdict is binary: callers learn pass/fail from the process exit status and
// read the raw tool status from the run report.
func (c ExitCode) Normalize() ExitCode {
	if c == 0 {
		return CodeSuccess
	}
	return CodeLintFailure
}

// String returns the code in decimal.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
