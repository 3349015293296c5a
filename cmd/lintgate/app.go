// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/lintgate/lintgate/internal/app/check"
	"github.com/lintgate/lintgate/internal/config"
	"github.com/lintgate/lintgate/internal/discovery"
)

type (
	// App is the composition root for the command layer. Cobra handlers hold
	// an App and reach business logic only through its fields, which keeps
	// the handlers thin and lets tests swap in fakes.
	App struct {
		Config      config.Provider
		Gate        check.Service
		Diagnostics DiagnosticRenderer
		stdout      io.Writer
		stderr      io.Writer
	}

	// Dependencies lists the seams NewApp accepts. A nil field is filled
	// with the production implementation, so a test overrides only what it
	// exercises.
	Dependencies struct {
		Config      config.Provider
		Gate        check.Service
		Diagnostics DiagnosticRenderer
		Stdout      io.Writer
		Stderr      io.Writer
	}

	// DiagnosticRenderer turns discovery diagnostics into terminal output.
	// Services hand diagnostics back as data; all styling lives here.
	DiagnosticRenderer interface {
		Render(ctx context.Context, diags []discovery.Diagnostic, stderr io.Writer)
	}

	defaultDiagnosticRenderer struct{}
)

// NewApp fills any nil dependency with its production default and wires the
// App. The gate service is built last because it consumes the resolved
// config provider and output streams.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Diagnostics == nil {
		deps.Diagnostics = &defaultDiagnosticRenderer{}
	}
	if deps.Gate == nil {
		deps.Gate = check.NewService(deps.Config, deps.Stdout, deps.Stderr)
	}

	return &App{
		Config:      deps.Config,
		Gate:        deps.Gate,
		Diagnostics: deps.Diagnostics,
		stdout:      deps.Stdout,
		stderr:      deps.Stderr,
	}
}

// Render prints one line per diagnostic, prefixed with a lipgloss-styled
// severity label and suffixed with the offending path when one is known.
func (r *defaultDiagnosticRenderer) Render(_ context.Context, diags []discovery.Diagnostic, stderr io.Writer) {
	for _, diag := range diags {
		prefix := WarningStyle.Render("warning")
		if diag.Severity == discovery.SeverityError {
			prefix = ErrorStyle.Render("error")
		}

		suffix := ""
		if diag.Path != "" {
			suffix = " (" + diag.Path + ")"
		}

		_, _ = fmt.Fprintf(stderr, "%s: %s%s\n", prefix, diag.Message, suffix)
	}
}
