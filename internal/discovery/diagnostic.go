// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
)

const (
	// SeverityWarning indicates a recoverable resolution warning.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a non-fatal resolution error diagnostic.
	SeverityError Severity = "error"
)

const (
	// CodeRootUnmarked is emitted when an explicitly given project root
	// contains none of the known project markers.
	CodeRootUnmarked DiagnosticCode = "root_unmarked"
	// CodePyprojectUnreadable is emitted when pyproject.toml exists but
	// could not be read; tool detection falls back to the default tool.
	CodePyprojectUnreadable DiagnosticCode = "pyproject_unreadable"
	// CodePyprojectParseSkipped is emitted when pyproject.toml could not
	// be parsed; tool detection falls back to the default tool.
	CodePyprojectParseSkipped DiagnosticCode = "pyproject_parse_skipped"
	// CodeMultipleToolSections is emitted when pyproject.toml configures
	// more than one recognized lint tool; the highest-precedence one runs.
	CodeMultipleToolSections DiagnosticCode = "multiple_tool_sections"
)

var (
	// ErrInvalidSeverity is the sentinel error wrapped by InvalidSeverityError.
	ErrInvalidSeverity = errors.New("invalid severity")
	// ErrInvalidDiagnosticCode is the sentinel error wrapped by InvalidDiagnosticCodeError.
	ErrInvalidDiagnosticCode = errors.New("invalid diagnostic code")
)

type (
	// Severity represents resolution diagnostic severity.
	Severity string

	// DiagnosticCode is a machine-readable diagnostic identifier.
	DiagnosticCode string

	// Diagnostic represents a structured resolution diagnostic that is
	// returned to callers (rather than written to stderr) for consistent
	// rendering policy.
	Diagnostic struct {
		// Severity is the diagnostic level (warning or error).
		Severity Severity
		// Code is the machine-readable identifier (e.g., "pyproject_parse_skipped").
		Code DiagnosticCode
		// Message is the human-readable description.
		Message string
		// Path is the file path associated with this diagnostic (optional).
		Path string
		// Cause is the underlying error (optional, for programmatic inspection).
		Cause error
	}

	// InvalidSeverityError is returned when a Severity value is not one of
	// the defined levels. It wraps ErrInvalidSeverity for errors.Is() checks.
	InvalidSeverityError struct {
		Value Severity
	}

	// InvalidDiagnosticCodeError is returned when a DiagnosticCode is not
	// part of the catalog. It wraps ErrInvalidDiagnosticCode for
	// errors.Is() checks.
	InvalidDiagnosticCodeError struct {
		Value DiagnosticCode
	}
)

func (e InvalidSeverityError) Error() string {
	return fmt.Sprintf("invalid severity %q: must be %q or %q", e.Value, SeverityWarning, SeverityError)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e InvalidSeverityError) Unwrap() error { return ErrInvalidSeverity }

func (e InvalidDiagnosticCodeError) Error() string {
	return fmt.Sprintf("invalid diagnostic code %q", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e InvalidDiagnosticCodeError) Unwrap() error { return ErrInvalidDiagnosticCode }

// String returns the severity as a plain string.
func (s Severity) String() string { return string(s) }

// Validate checks that the severity is one of the defined levels.
func (s Severity) Validate() error {
	switch s {
	case SeverityWarning, SeverityError:
		return nil
	default:
		return InvalidSeverityError{Value: s}
	}
}

// String returns the code as a plain string.
func (c DiagnosticCode) String() string { return string(c) }

// Validate checks that the code is part of the catalog.
func (c DiagnosticCode) Validate() error {
	switch c {
	case CodeRootUnmarked, CodePyprojectUnreadable, CodePyprojectParseSkipped, CodeMultipleToolSections:
		return nil
	default:
		return InvalidDiagnosticCodeError{Value: c}
	}
}

// NewDiagnostic creates a diagnostic with no associated path or cause.
func NewDiagnostic(severity Severity, code DiagnosticCode, message string) Diagnostic {
	return Diagnostic{Severity: severity, Code: code, Message: message}
}

// NewDiagnosticWithPath creates a diagnostic associated with a file path.
func NewDiagnosticWithPath(severity Severity, code DiagnosticCode, message, path string) Diagnostic {
	return Diagnostic{Severity: severity, Code: code, Message: message, Path: path}
}

// NewDiagnosticWithCause creates a diagnostic carrying the underlying error
// for programmatic inspection.
func NewDiagnosticWithCause(severity Severity, code DiagnosticCode, message, path string, cause error) Diagnostic {
	return Diagnostic{Severity: severity, Code: code, Message: message, Path: path, Cause: cause}
}
