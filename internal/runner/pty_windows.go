// SPDX-License-Identifier: MPL-2.0

//go:build windows

package runner

import "fmt"

// ExecutePTY is unsupported on Windows; use Execute instead.
func (r *NativeRunner) ExecutePTY(ctx *ExecutionContext) *Result {
	return NewErrorResult(1, fmt.Errorf("pty execution is not supported on windows"))
}

// SupportsPTY returns false on Windows.
func (r *NativeRunner) SupportsPTY() bool {
	return false
}
