// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lintgate/lintgate/internal/app/check"
	"github.com/lintgate/lintgate/internal/discovery"
	"github.com/lintgate/lintgate/internal/issue"
	"github.com/lintgate/lintgate/internal/report"
	"github.com/lintgate/lintgate/internal/watch"
	"github.com/lintgate/lintgate/pkg/gatefile"
	"github.com/lintgate/lintgate/pkg/types"
)

// watchFlagValues holds the watch command's flag values.
type watchFlagValues struct {
	project     string
	runtime     string
	tool        string
	noChecks    bool
	keepGoing   bool
	clearScreen bool
}

// newWatchCommand creates the `lintgate watch` command.
func newWatchCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &watchFlagValues{}

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run the gate when project files change",
		Long: `Re-run the gate when project files change.

Runs the gate once immediately, then watches the project tree and re-runs
after each burst of changes. The gatefile's watch section configures the
patterns, ignores, and debounce; without one, Python sources and root-level
tool configuration are watched. Re-runs never overlap: changes arriving
while a run is in flight are deferred to the next run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatchMode(cmd, app, rootFlags, flags)
		},
	}

	watchCmd.Flags().StringVarP(&flags.project, "project", "p", "", "project root (default: ascend from the working directory)")
	watchCmd.Flags().StringVar(&flags.runtime, "runtime", "", "runtime override for the tool and all checks (native, virtual, container)")
	watchCmd.Flags().StringVar(&flags.tool, "tool", "", "lint tool override (ruff, flake8, pylint, ...)")
	watchCmd.Flags().BoolVar(&flags.noChecks, "no-checks", false, "skip the gatefile's custom checks")
	watchCmd.Flags().BoolVar(&flags.keepGoing, "keep-going", false, "run remaining checks after one fails")
	watchCmd.Flags().BoolVar(&flags.clearScreen, "clear", false, "clear the terminal before each re-run")

	return watchCmd
}

// runWatchMode resolves the project, runs the gate once, then re-runs it
// on file changes until the context is cancelled (e.g. Ctrl+C). A failing
// gate run does not stop the watch; the next save retries it.
func runWatchMode(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, flags *watchFlagValues) error {
	// Resolve the project up front: without a root there is nothing to
	// watch. Failures carry the same classes a check run would.
	project, err := discovery.Resolve(discovery.Options{ExplicitRoot: flags.project})
	if err != nil {
		code := types.CodeEnvironmentError
		if errors.Is(err, discovery.ErrGatefileLoad) {
			code = types.CodeConfigError
		}
		return renderWatchFailure(cmd, app, err, code, rootFlags.verbose)
	}

	req := check.Request{
		ExplicitRoot:    project.Root,
		ConfigPath:      rootFlags.configPath,
		RuntimeOverride: gatefile.RuntimeMode(flags.runtime),
		Tool:            gatefile.ToolName(flags.tool),
		NoChecks:        flags.noChecks,
		KeepGoing:       flags.keepGoing,
		Verbose:         rootFlags.verbose,
	}

	// Run the gate through the normal pipeline and report the outcome
	// without stopping the watch. The user may fix the problem and save.
	runGate := func(ctx context.Context) {
		rep, diags, runErr := app.Gate.Run(ctx, req)
		app.Diagnostics.Render(ctx, diags, app.stderr)
		if runErr != nil {
			fmt.Fprintf(app.stderr, "%s Gate failed: %v\n",
				WarningStyle.Render("!"), formatErrorForDisplay(runErr, rootFlags.verbose))
			return
		}
		if writeErr := report.Write(app.stdout, report.OutputFormatText, rep); writeErr != nil {
			fmt.Fprintf(app.stderr, "%s Failed to render report: %v\n", WarningStyle.Render("!"), writeErr)
		}
	}

	fmt.Fprintf(app.stdout, "%s Watch mode: initial gate run\n", VerboseHighlightStyle.Render("→"))
	runGate(cmd.Context())
	fmt.Fprintf(app.stdout, "\n%s Watching %s for changes (Ctrl+C to stop)...\n\n",
		VerboseHighlightStyle.Render("→"), project.Root)

	cfg := watchConfigFor(project, flags, app)
	cfg.OnChange = func(ctx context.Context, changed []string) error {
		fmt.Fprintf(app.stdout, "%s Detected %d change(s). Re-running the gate...\n",
			VerboseHighlightStyle.Render("→"), len(changed))
		if rootFlags.verbose {
			for _, p := range changed {
				fmt.Fprintf(app.stdout, "  %s %s\n",
					VerboseHighlightStyle.Render("•"), VerboseStyle.Render(p))
			}
		}
		runGate(ctx)
		fmt.Fprintf(app.stdout, "\n%s Watching for changes...\n\n", VerboseHighlightStyle.Render("→"))
		return nil
	}

	w, err := watch.New(cfg)
	if err != nil {
		code := types.CodeEnvironmentError
		if errors.Is(err, watch.ErrInvalidWatchConfig) {
			code = types.CodeConfigError
		}
		return renderWatchFailure(cmd, app, err, code, rootFlags.verbose)
	}

	g, gctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error { return w.Run(gctx) })
	if err := g.Wait(); err != nil {
		return renderWatchFailure(cmd, app, err, types.CodeEnvironmentError, rootFlags.verbose)
	}
	return nil
}

// watchConfigFor derives the watcher configuration from the gatefile's
// watch section and the command flags.
func watchConfigFor(project *discovery.Project, flags *watchFlagValues, app *App) watch.Config {
	cfg := watch.Config{
		BaseDir:     types.FilesystemPath(project.Root),
		ClearScreen: flags.clearScreen,
		Stdout:      app.stdout,
	}

	venvDir := gatefile.DefaultVenvDir
	if project.Gatefile != nil {
		venvDir = project.Gatefile.VenvDir()

		if wc := project.Gatefile.Watch; wc != nil {
			cfg.Patterns = wc.Patterns
			cfg.Ignore = wc.Ignore
			cfg.ClearScreen = flags.clearScreen || wc.ClearScreen
			// Validated at gatefile load time, so a parse error here
			// cannot happen.
			if d, err := wc.ParseDebounce(); err == nil {
				cfg.Debounce = d
			}
		}
	}

	// The default ignores cover ".venv"; a renamed virtualenv directory
	// must be excluded explicitly or the tool's own cache writes would
	// retrigger the gate.
	if venvDir != gatefile.DefaultVenvDir {
		cfg.Ignore = append(cfg.Ignore, gatefile.GlobPattern("**/"+filepath.ToSlash(venvDir)+"/**"))
	}

	return cfg
}

// renderWatchFailure reports a failure that prevents watching and maps it
// to its exit class.
func renderWatchFailure(cmd *cobra.Command, app *App, err error, code types.ExitCode, verbose bool) error {
	if catalogEntry := issue.Get(issue.WatchStartFailedId); catalogEntry != nil {
		if rendered, renderErr := catalogEntry.Render("dark"); renderErr == nil {
			fmt.Fprint(app.stderr, rendered)
		}
	}
	fmt.Fprintf(app.stderr, "%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return &ExitError{Code: code, Err: err}
}
