// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lintgate/lintgate/internal/app/check"
	"github.com/lintgate/lintgate/pkg/gatefile"
)

// envFlagValues holds the env command's flag values.
type envFlagValues struct {
	project string
	asJSON  bool
}

// newEnvCommand creates the `lintgate env` command.
func newEnvCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &envFlagValues{}

	envCmd := &cobra.Command{
		Use:   "env",
		Short: "Show the resolved activation without running the gate",
		Long: `Show the resolved activation without running the gate.

Resolves the project root, selects the lint tool, and activates the
virtual environment exactly as 'lintgate check' would, then prints the
result instead of executing. Failures exit with the same classes a real
run would: 2 for configuration errors, 3 for environment errors.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnv(cmd, app, rootFlags, flags)
		},
	}

	envCmd.Flags().StringVarP(&flags.project, "project", "p", "", "project root (default: ascend from the working directory)")
	envCmd.Flags().BoolVar(&flags.asJSON, "json", false, "output as JSON")

	return envCmd
}

func runEnv(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, flags *envFlagValues) error {
	req := check.Request{
		ExplicitRoot: flags.project,
		ConfigPath:   rootFlags.configPath,
		Verbose:      rootFlags.verbose,
	}

	plan, diags, err := app.Gate.Inspect(cmd.Context(), req)
	app.Diagnostics.Render(cmd.Context(), diags, app.stderr)
	if err != nil {
		return renderGateFailure(cmd, app, err, rootFlags.verbose)
	}

	if flags.asJSON {
		encoder := json.NewEncoder(app.stdout)
		encoder.SetIndent("", "  ")
		if encodeErr := encoder.Encode(plan); encodeErr != nil {
			return fmt.Errorf("failed to encode activation: %w", encodeErr)
		}
		return nil
	}

	writeEnvPlan(app, plan)
	return nil
}

// writeEnvPlan renders the plan as styled key/value lines.
func writeEnvPlan(app *App, plan *check.EnvironmentPlan) {
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(app.stdout, TitleStyle.Render("Resolved Activation"))
	fmt.Fprintln(app.stdout)

	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("root"), valueStyle.Render(plan.Root))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("marker"), valueStyle.Render(plan.Marker))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("tool"), valueStyle.Render(plan.Tool))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("tool_args"), valueStyle.Render(strings.Join(plan.ToolArgs, " ")))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("tool_origin"), valueStyle.Render(plan.ToolOrigin))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("runtime"), valueStyle.Render(plan.Runtime))

	if plan.Runtime == string(gatefile.RuntimeContainer) && plan.EnvDir == "" {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("env_dir"), SubtitleStyle.Render("(containerized; no activation)"))
		return
	}

	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("env_dir"), valueStyle.Render(plan.EnvDir))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("path_entry"), valueStyle.Render(plan.PathEntry))
	if plan.ToolPath != "" {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("tool_path"), valueStyle.Render(plan.ToolPath))
	} else {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("tool_path"), SubtitleStyle.Render("(from container image)"))
	}
}
