// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Terminal color palette. Verdict colors (success, error) are shared with the
// report renderer so "PASS" in a report and "✓" in a command look the same.
const (
	// ColorPrimary is sky blue, used for titles and headers.
	ColorPrimary = lipgloss.Color("#0EA5E9")

	// ColorMuted is gray, used for secondary text and labels.
	ColorMuted = lipgloss.Color("#71717A")

	// ColorSuccess is green, used for passing verdicts and confirmations.
	ColorSuccess = lipgloss.Color("#22C55E")

	// ColorError is red, used for failing verdicts and fatal errors.
	ColorError = lipgloss.Color("#DC2626")

	// ColorWarning is yellow, used for diagnostics that do not stop the gate.
	ColorWarning = lipgloss.Color("#EAB308")

	// ColorHighlight is indigo, used for command names and key emphasis.
	ColorHighlight = lipgloss.Color("#6366F1")

	// ColorVerbose is light gray, used for verbose detail lines.
	ColorVerbose = lipgloss.Color("#A1A1AA")
)

// Shared lipgloss styles built from the palette. Commands render through
// these rather than constructing styles inline, so output stays uniform.
var (
	// TitleStyle renders section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle renders secondary headers and hints.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle renders confirmations and passing indicators.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle renders the Error: prefix and failing indicators.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle renders non-fatal diagnostic prefixes.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// CmdStyle renders command names and config keys.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// VerboseStyle renders verbose detail lines, like changed-file listings
	// in watch mode.
	VerboseStyle = lipgloss.NewStyle().
			Foreground(ColorVerbose)

	// VerboseHighlightStyle renders the marker in front of progress lines.
	VerboseHighlightStyle = lipgloss.NewStyle().
				Foreground(ColorHighlight)
)
