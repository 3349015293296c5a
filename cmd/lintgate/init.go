// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lintgate/lintgate/pkg/gatefile"
)

// initFlagValues holds the init command's flag values.
type initFlagValues struct {
	force    bool
	template string
}

// newInitCommand creates the `lintgate init` command.
func newInitCommand(app *App) *cobra.Command {
	flags := &initFlagValues{}

	initCmd := &cobra.Command{
		Use:   "init [filename]",
		Short: "Create a starter gatefile.cue in the current directory",
		Long: `Create a starter gatefile.cue in the current directory.

The gatefile marks its directory as the project root and configures the
lint tool, the virtualenv location, custom checks, and watch mode. An
empty gatefile is valid too; the starter templates just make the common
fields visible.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(app, flags, args)
		},
	}

	initCmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing gatefile")
	initCmd.Flags().StringVarP(&flags.template, "template", "t", "default", "template to use (default, minimal, full)")

	return initCmd
}

func runInit(app *App, flags *initFlagValues, args []string) error {
	filename := gatefile.Filename
	if len(args) > 0 {
		filename = args[0]
	}

	if _, err := os.Stat(filename); err == nil && !flags.force {
		return fmt.Errorf("file '%s' already exists. Use --force to overwrite", filename)
	}

	content := generateGatefile(flags.template)

	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	absPath, _ := filepath.Abs(filename)
	fmt.Fprintf(app.stdout, "%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	fmt.Fprintln(app.stdout)
	fmt.Fprintln(app.stdout, SubtitleStyle.Render("Next steps:"))
	fmt.Fprintln(app.stdout, "  1. Create the virtualenv: python -m venv .venv")
	fmt.Fprintln(app.stdout, "  2. Install the lint tool into it: .venv/bin/pip install ruff")
	fmt.Fprintln(app.stdout, "  3. Run 'lintgate check'")

	return nil
}

// generateGatefile builds starter gatefile content for the given template.
func generateGatefile(template string) string {
	var gf *gatefile.Gatefile

	switch template {
	case "minimal":
		// The empty gatefile: marks the root, relies on defaults for
		// everything else.
		gf = &gatefile.Gatefile{}

	case "full":
		gf = &gatefile.Gatefile{
			Venv: gatefile.DefaultVenvDir,
			Tool: &gatefile.ToolSpec{
				Name:     "ruff",
				Args:     []string{"check", "."},
				Fallback: gatefile.FallbackNone,
			},
			Checks: []gatefile.Check{
				{
					Name:    "types",
					Script:  "mypy --strict src/",
					Runtime: gatefile.RuntimeNative,
				},
				{
					Name:   "format",
					Script: "ruff format --check .",
				},
				{
					Name:    "audit",
					Script:  "pip-audit -r requirements.txt",
					Runtime: gatefile.RuntimeContainer,
					Image:   "python:3.12-slim",
				},
			},
			Watch: &gatefile.WatchConfig{
				Patterns: []gatefile.GlobPattern{"**/*.py", "**/*.pyi"},
				Ignore:   []gatefile.GlobPattern{"**/migrations/**"},
				Debounce: "500ms",
			},
		}

	default: // "default"
		gf = &gatefile.Gatefile{
			Tool: &gatefile.ToolSpec{
				Name: "ruff",
				Args: []string{"check", "."},
			},
			Checks: []gatefile.Check{
				{
					Name:   "format",
					Script: "ruff format --check .",
				},
			},
		}
	}

	return gatefile.GenerateCUE(gf)
}
