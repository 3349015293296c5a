// SPDX-License-Identifier: MPL-2.0

// Package cmd implements the lintgate command-line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/lintgate/lintgate/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlagValues holds the persistent flag values shared by every command.
type rootFlagValues struct {
	// configPath is the explicit --config flag value.
	configPath string
	// verbose enables verbose diagnostic output.
	verbose bool
}

// newRootCommand creates the lintgate root command and its subcommands.
func newRootCommand(app *App) *cobra.Command {
	rootFlags := &rootFlagValues{}

	rootCmd := &cobra.Command{
		Use:   "lintgate",
		Short: "A deterministic lint gate for Python projects",
		Long: TitleStyle.Render("lintgate") + SubtitleStyle.Render(" - A deterministic lint gate for Python projects") + `

lintgate resolves a fixed project root, activates the project's virtual
environment without touching the process environment, runs the configured
lint tool over the whole tree, then the gatefile's custom checks.

The exit code is the contract:
  0  everything passed
  1  the lint tool or a check found problems
  2  configuration error (bad gatefile, bad config, bad flag value)
  3  environment error (no project root, no virtualenv, no tool)

` + SubtitleStyle.Render("Quick Start:") + `
  1. cd into a project with a gatefile.cue or pyproject.toml
  2. Run 'lintgate check'
  3. Wire the same invocation into CI

` + SubtitleStyle.Render("Examples:") + `
  lintgate check                 Run the gate against the current project
  lintgate check --output json   Machine-readable report
  lintgate env                   Show the resolved activation
  lintgate init                  Create a starter gatefile.cue
  lintgate watch                 Re-run the gate on file changes`,
	}

	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&rootFlags.configPath, "config", "", "config file (default is $HOME/.config/lintgate/config.cue)")

	rootCmd.AddCommand(newCheckCommand(app, rootFlags))
	rootCmd.AddCommand(newEnvCommand(app, rootFlags))
	rootCmd.AddCommand(newInitCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newWatchCommand(app, rootFlags))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the production App and runs the root command.
// This is called by main.main(). Exit codes follow the gate contract:
// an ExitError carries the class, any other error exits 1.
func Execute() {
	app := NewApp(Dependencies{})

	// fang wraps cobra execution with styled help and error output. It
	// overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		newRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// formatErrorForDisplay renders err for the terminal: ActionableErrors get
// their suggestion list (and, verbose, the cause chain), anything else
// falls back to Error().
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
