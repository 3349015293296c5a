// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lintgate/lintgate/pkg/types"
)

func TestExitError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  &ExitError{Code: types.CodeEnvironmentError, Err: errors.New("no virtualenv")},
			want: "no virtualenv",
		},
		{
			name: "code only",
			err:  &ExitError{Code: types.CodeLintFailure},
			want: "exit status 1",
		},
		{
			name: "config class code only",
			err:  &ExitError{Code: types.CodeConfigError},
			want: "exit status 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	t.Parallel()

	underlying := errors.New("root cause")
	err := fmt.Errorf("wrapped: %w", &ExitError{Code: types.CodeLintFailure, Err: underlying})

	if !errors.Is(err, underlying) {
		t.Error("errors.Is should reach the underlying error through ExitError")
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatal("errors.As should find the ExitError")
	}
	if exitErr.Code != types.CodeLintFailure {
		t.Errorf("Code = %v, want CodeLintFailure", exitErr.Code)
	}
}
