// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/lintgate/lintgate/pkg/types"
)

// ExitError carries the process exit code out of a RunE handler. Execute
// translates it into os.Exit after fang has rendered the error, so
// handlers never exit directly and defers still run.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", int(e.Code))
}

// Unwrap exposes the wrapped error to errors.Is and errors.As.
func (e *ExitError) Unwrap() error {
	return e.Err
}
