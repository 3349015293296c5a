// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lintgate/lintgate/internal/app/check"
	"github.com/lintgate/lintgate/internal/issue"
	"github.com/lintgate/lintgate/internal/report"
	"github.com/lintgate/lintgate/pkg/gatefile"
	"github.com/lintgate/lintgate/pkg/types"
)

// checkFlagValues holds the check command's flag values.
type checkFlagValues struct {
	project   string
	runtime   string
	tool      string
	output    string
	pty       bool
	noChecks  bool
	keepGoing bool
}

// newCheckCommand creates the `lintgate check` command.
func newCheckCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &checkFlagValues{}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Run the lint gate against the current project",
		Long: `Run the lint gate against the current project.

The project root is found by ascending from the working directory until a
gatefile.cue, pyproject.toml, or .venv marker appears (or taken from
--project). The project's virtual environment is activated for the spawned
tool only; the lintgate process itself is never modified. The lint tool
runs over the whole tree with its output streamed through, then the
gatefile's custom checks run in order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, app, rootFlags, flags)
		},
	}

	checkCmd.Flags().StringVarP(&flags.project, "project", "p", "", "project root (default: ascend from the working directory)")
	checkCmd.Flags().StringVar(&flags.runtime, "runtime", "", "runtime override for the tool and all checks (native, virtual, container)")
	checkCmd.Flags().StringVar(&flags.tool, "tool", "", "lint tool override (ruff, flake8, pylint, ...)")
	checkCmd.Flags().StringVarP(&flags.output, "output", "o", "", "report format (text, json, yaml)")
	checkCmd.Flags().BoolVar(&flags.pty, "pty", false, "attach the lint tool to a pseudo-terminal")
	checkCmd.Flags().BoolVar(&flags.noChecks, "no-checks", false, "skip the gatefile's custom checks")
	checkCmd.Flags().BoolVar(&flags.keepGoing, "keep-going", false, "run remaining checks after one fails")

	return checkCmd
}

// runCheck executes the gate pipeline and renders its outcome. The exit
// code is the command's real product: 0 pass, 1 lint failure, 2 config
// error, 3 environment error.
func runCheck(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, flags *checkFlagValues) error {
	format, err := report.ParseOutputFormat(flags.output)
	if err != nil {
		cmd.SilenceUsage = true
		return &ExitError{Code: types.CodeConfigError, Err: err}
	}

	req := check.Request{
		ExplicitRoot:    flags.project,
		ConfigPath:      rootFlags.configPath,
		RuntimeOverride: gatefile.RuntimeMode(flags.runtime),
		Tool:            gatefile.ToolName(flags.tool),
		PTY:             flags.pty,
		NoChecks:        flags.noChecks,
		KeepGoing:       flags.keepGoing,
		// Structured formats carry the tool output inside the report, so
		// the run buffers instead of streaming.
		CaptureOutput: format.OrDefault() != report.OutputFormatText,
		Verbose:       rootFlags.verbose,
	}

	rep, diags, err := app.Gate.Run(cmd.Context(), req)
	app.Diagnostics.Render(cmd.Context(), diags, app.stderr)
	if err != nil {
		return renderGateFailure(cmd, app, err, rootFlags.verbose)
	}

	if err := report.Write(app.stdout, format, rep); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if rep.ExitCode != types.CodeSuccess {
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
		return &ExitError{Code: rep.ExitCode}
	}
	return nil
}

// renderGateFailure reports a pipeline failure that prevented the lint
// tool from running. The issue catalog entry, when one applies, explains
// the failure and how to fix it; the returned ExitError carries its class.
func renderGateFailure(cmd *cobra.Command, app *App, err error, verbose bool) error {
	gerr, ok := errors.AsType[*check.GateError](err)
	if !ok {
		return err
	}

	if gerr.IssueID != 0 {
		if catalogEntry := issue.Get(gerr.IssueID); catalogEntry != nil {
			rendered, renderErr := catalogEntry.Render("dark")
			if renderErr != nil {
				slog.Warn("failed to render issue catalog entry", "issueID", gerr.IssueID, "error", renderErr)
			} else {
				fmt.Fprint(app.stderr, rendered)
			}
		}
	}
	fmt.Fprintf(app.stderr, "%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(gerr.Err, verbose))

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return &ExitError{Code: gerr.Code, Err: gerr.Err}
}
