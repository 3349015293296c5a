// SPDX-License-Identifier: MPL-2.0

package gatefile

import (
	"fmt"
	"strings"
)

// GenerateCUE renders the gatefile as CUE source. Zero-value fields are
// omitted, matching the schema's everything-optional shape, so the output
// of an empty Gatefile is just the header comment.
func GenerateCUE(g *Gatefile) string {
	var sb strings.Builder

	sb.WriteString("// lintgate project definition\n")
	sb.WriteString("// See https://github.com/lintgate/lintgate for documentation.\n\n")

	if g.Venv != "" {
		sb.WriteString(fmt.Sprintf("venv: %q\n", g.Venv))
	}

	if g.Tool != nil {
		sb.WriteString("tool: {\n")
		sb.WriteString(fmt.Sprintf("\tname: %q\n", g.Tool.Name))
		if len(g.Tool.Args) > 0 {
			sb.WriteString(fmt.Sprintf("\targs: %s\n", cueStringList(g.Tool.Args)))
		}
		if g.Tool.Fallback != "" {
			sb.WriteString(fmt.Sprintf("\tfallback: %q\n", g.Tool.Fallback))
		}
		sb.WriteString("}\n")
	}

	if len(g.Checks) > 0 {
		sb.WriteString("\nchecks: [\n")
		for _, c := range g.Checks {
			sb.WriteString("\t{\n")
			sb.WriteString(fmt.Sprintf("\t\tname:   %q\n", c.Name))
			sb.WriteString(fmt.Sprintf("\t\tscript: %q\n", c.Script))
			if c.Runtime != "" {
				sb.WriteString(fmt.Sprintf("\t\truntime: %q\n", c.Runtime))
			}
			if c.Image != "" {
				sb.WriteString(fmt.Sprintf("\t\timage: %q\n", c.Image))
			}
			sb.WriteString("\t},\n")
		}
		sb.WriteString("]\n")
	}

	if g.Watch != nil {
		sb.WriteString("\nwatch: {\n")
		if len(g.Watch.Patterns) > 0 {
			sb.WriteString(fmt.Sprintf("\tpatterns: %s\n", cueStringList(globStrings(g.Watch.Patterns))))
		}
		if len(g.Watch.Ignore) > 0 {
			sb.WriteString(fmt.Sprintf("\tignore: %s\n", cueStringList(globStrings(g.Watch.Ignore))))
		}
		if g.Watch.Debounce != "" {
			sb.WriteString(fmt.Sprintf("\tdebounce: %q\n", g.Watch.Debounce))
		}
		if g.Watch.ClearScreen {
			sb.WriteString("\tclear_screen: true\n")
		}
		sb.WriteString("}\n")
	}

	return sb.String()
}

// cueStringList renders values as a single-line CUE string list.
func cueStringList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func globStrings(patterns []GlobPattern) []string {
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = string(p)
	}
	return out
}
