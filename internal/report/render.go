// SPDX-License-Identifier: MPL-2.0

package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

const (
	// OutputFormatText is the human-readable format with a styled verdict.
	OutputFormatText OutputFormat = "text"
	// OutputFormatJSON is indented JSON.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML is YAML with 2-space indentation.
	OutputFormatYAML OutputFormat = "yaml"
)

// ErrInvalidOutputFormat is the sentinel error wrapped by InvalidOutputFormatError.
var ErrInvalidOutputFormat = errors.New("invalid output format")

type (
	// OutputFormat selects how a report is rendered. The zero value means
	// OutputFormatText.
	OutputFormat string

	// InvalidOutputFormatError is returned when an OutputFormat is not
	// one of the defined formats. It wraps ErrInvalidOutputFormat for
	// errors.Is() checks.
	InvalidOutputFormatError struct {
		Value OutputFormat
	}
)

func (e InvalidOutputFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q: must be %q, %q, or %q",
		e.Value, OutputFormatText, OutputFormatJSON, OutputFormatYAML)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e InvalidOutputFormatError) Unwrap() error { return ErrInvalidOutputFormat }

// String returns the format as a plain string.
func (f OutputFormat) String() string { return string(f) }

// Validate checks that the format is one of the defined values. The zero
// value is valid and means OutputFormatText.
func (f OutputFormat) Validate() error {
	switch f {
	case "", OutputFormatText, OutputFormatJSON, OutputFormatYAML:
		return nil
	default:
		return InvalidOutputFormatError{Value: f}
	}
}

// OrDefault returns the format, substituting text for the zero value.
func (f OutputFormat) OrDefault() OutputFormat {
	if f == "" {
		return OutputFormatText
	}
	return f
}

// ParseOutputFormat parses a string into an OutputFormat. Empty input
// yields the zero value, which renders as text.
func ParseOutputFormat(value string) (OutputFormat, error) {
	f := OutputFormat(value)
	if err := f.Validate(); err != nil {
		return "", err
	}
	return f, nil
}

// Verdict line styles. Colors match the CLI palette.
var (
	passStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22C55E"))
	failStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#DC2626"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#71717A"))
)

// Write renders the report to w in the given format.
func Write(w io.Writer, format OutputFormat, r *Report) error {
	if w == nil {
		return errors.New("writer is nil")
	}
	if r == nil {
		return errors.New("report is nil")
	}

	switch format.OrDefault() {
	case OutputFormatText:
		return writeText(w, r)
	case OutputFormatJSON:
		return writeJSON(w, r)
	case OutputFormatYAML:
		return writeYAML(w, r)
	default:
		return InvalidOutputFormatError{Value: format}
	}
}

func writeJSON(w io.Writer, r *Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, r *Report) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("finalize report: %w", err)
	}
	return nil
}

// writeText renders the verdict line followed by one line for the tool run
// and one per custom check. Tool output is not repeated here; it streamed
// during the run.
func writeText(w io.Writer, r *Report) error {
	var sb strings.Builder

	verdict := passStyle.Render("PASS")
	if r.Failed() {
		verdict = failStyle.Render("FAIL")
	}
	fmt.Fprintf(&sb, "%s %s (%s)\n", verdict, mutedStyle.Render(r.Root), r.Duration)

	argv := strings.Join(append([]string{r.Tool.Name}, r.Tool.Args...), " ")
	fmt.Fprintf(&sb, "  %s %s (exit %s, %s)\n", mutedStyle.Render("tool:"), argv, r.Tool.ExitCode, r.Tool.Duration)

	for _, c := range r.Checks {
		writeCheckLine(&sb, c)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeCheckLine(sb *strings.Builder, c CheckResult) {
	label := mutedStyle.Render("check:")
	if c.Skipped {
		fmt.Fprintf(sb, "  %s %s (skipped)\n", label, c.Name)
		return
	}

	status := passStyle.Render("ok")
	if !c.ExitCode.IsSuccess() {
		status = failStyle.Render("failed")
	}
	fmt.Fprintf(sb, "  %s %s %s (exit %s, %s)\n", label, c.Name, status, c.ExitCode, c.Duration)
}
