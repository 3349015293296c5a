// SPDX-License-Identifier: MPL-2.0

// Package report carries the outcome of a gate run and renders it as
// text, JSON, or YAML.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lintgate/lintgate/pkg/types"
)

const (
	// VerdictPass means the lint tool and every custom check passed.
	VerdictPass Verdict = "pass"
	// VerdictFail means the tool or a custom check exited non-zero, or
	// the run aborted partway through.
	VerdictFail Verdict = "fail"
)

// ErrInvalidVerdict is the sentinel error wrapped by InvalidVerdictError.
var ErrInvalidVerdict = errors.New("invalid verdict")

type (
	// Verdict is the binary gate outcome.
	Verdict string

	// Duration wraps time.Duration to serialize as a human-readable
	// duration string ("1.5s", "340ms") instead of raw nanoseconds.
	Duration time.Duration

	// ToolRun describes the lint tool invocation and its outcome.
	ToolRun struct {
		// Name is the tool executable name.
		Name string `json:"name" yaml:"name"`
		// Path is the resolved executable the run used.
		Path string `json:"path,omitempty" yaml:"path,omitempty"`
		// Args are the arguments the tool ran with.
		Args []string `json:"args,omitempty" yaml:"args,omitempty"`
		// Origin says where the tool selection came from (gatefile,
		// pyproject, flag, default).
		Origin string `json:"origin,omitempty" yaml:"origin,omitempty"`
		// ExitCode is the raw tool exit status.
		ExitCode types.ExitCode `json:"exit_code" yaml:"exit_code"`
		// Normalized is the gate signal derived from ExitCode (0 or 1).
		Normalized types.ExitCode `json:"normalized" yaml:"normalized"`
		// Duration is the wall-clock tool runtime.
		Duration Duration `json:"duration" yaml:"duration"`
		// Output is the tool's captured stdout. Empty when the tool
		// streamed directly to the terminal.
		Output string `json:"output,omitempty" yaml:"output,omitempty"`
		// ErrOutput is the tool's captured stderr.
		ErrOutput string `json:"err_output,omitempty" yaml:"err_output,omitempty"`
		// Error describes an invocation failure (spawn error), which the
		// gate treats the same as a lint failure.
		Error string `json:"error,omitempty" yaml:"error,omitempty"`
	}

	// CheckResult is the outcome of one custom check.
	CheckResult struct {
		// Name is the check name from the gatefile.
		Name string `json:"name" yaml:"name"`
		// Runtime names the runner the check executed under.
		Runtime string `json:"runtime,omitempty" yaml:"runtime,omitempty"`
		// ExitCode is the raw check exit status.
		ExitCode types.ExitCode `json:"exit_code" yaml:"exit_code"`
		// Normalized is the gate signal derived from ExitCode (0 or 1).
		Normalized types.ExitCode `json:"normalized" yaml:"normalized"`
		// Duration is the wall-clock check runtime.
		Duration Duration `json:"duration" yaml:"duration"`
		// Output is the check's captured stdout. Empty when the check
		// streamed directly to the terminal.
		Output string `json:"output,omitempty" yaml:"output,omitempty"`
		// ErrOutput is the check's captured stderr.
		ErrOutput string `json:"err_output,omitempty" yaml:"err_output,omitempty"`
		// Error describes a run failure (bad script, spawn error), which
		// counts as a failed check.
		Error string `json:"error,omitempty" yaml:"error,omitempty"`
		// Skipped marks checks that did not run because an earlier step
		// failed.
		Skipped bool `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	}

	// Report is the full outcome of one gate run.
	Report struct {
		// Root is the absolute project root the run acted on.
		Root string `json:"root" yaml:"root"`
		// Tool is the lint tool invocation.
		Tool ToolRun `json:"tool" yaml:"tool"`
		// Checks holds one entry per configured custom check, in
		// execution order.
		Checks []CheckResult `json:"checks,omitempty" yaml:"checks,omitempty"`
		// Verdict is the binary gate outcome.
		Verdict Verdict `json:"verdict" yaml:"verdict"`
		// ExitCode is the process exit code the run terminates with.
		ExitCode types.ExitCode `json:"exit_code" yaml:"exit_code"`
		// StartedAt is when the run began.
		StartedAt time.Time `json:"started_at" yaml:"started_at"`
		// Duration is the total wall-clock run time.
		Duration Duration `json:"duration" yaml:"duration"`
	}

	// InvalidVerdictError is returned when a Verdict is not one of the
	// defined values. It wraps ErrInvalidVerdict for errors.Is() checks.
	InvalidVerdictError struct {
		Value Verdict
	}
)

func (e InvalidVerdictError) Error() string {
	return fmt.Sprintf("invalid verdict %q: must be %q or %q", e.Value, VerdictPass, VerdictFail)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e InvalidVerdictError) Unwrap() error { return ErrInvalidVerdict }

// String returns the verdict as a plain string.
func (v Verdict) String() string { return string(v) }

// Validate checks that the verdict is one of the defined values.
func (v Verdict) Validate() error {
	switch v {
	case VerdictPass, VerdictFail:
		return nil
	default:
		return InvalidVerdictError{Value: v}
	}
}

// VerdictFor derives the gate verdict from a process exit code.
func VerdictFor(code types.ExitCode) Verdict {
	if code.IsSuccess() {
		return VerdictPass
	}
	return VerdictFail
}

// Failed reports whether the gate failed.
func (r *Report) Failed() bool { return r.Verdict != VerdictPass }

// String returns the duration in time.Duration notation.
func (d Duration) String() string { return time.Duration(d).String() }

// MarshalJSON encodes the duration as a duration string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON decodes a duration string.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML encodes the duration as a duration string.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML decodes a duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}
