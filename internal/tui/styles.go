// Package tui holds the interactive terminal views of the spectrum CLI: the
// report viewer and the init wizard.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// ---------------------------------------------------------------------------
// Color Palette
// ---------------------------------------------------------------------------

// ColorPrimary is the main accent color used for titles and highlights.
var ColorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7B78FF"}

// ColorAccent is a green-teal accent for selection indicators.
var ColorAccent = lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"}

// ColorSuccess marks passed specs (green).
var ColorSuccess = lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#4ADE80"}

// ColorWarning marks failed assumptions (amber).
var ColorWarning = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// ColorError marks failures (red).
var ColorError = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}

// ColorMuted is a subdued foreground color for secondary text and ignored
// nodes.
var ColorMuted = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

// ColorSubtle provides very low-contrast borders and placeholders.
var ColorSubtle = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}

// ColorHighlight is a background highlight for blurred buttons.
var ColorHighlight = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#1F2937"}

// ---------------------------------------------------------------------------
// Theme
// ---------------------------------------------------------------------------

// Theme holds the Lipgloss styles of the TUI views. Width and Height are not
// set on any style; views apply them at render time.
type Theme struct {
	// Title bar
	TitleBar  lipgloss.Style
	TitleHint lipgloss.Style

	// Report lines
	Passed     lipgloss.Style
	Failed     lipgloss.Style
	Assumption lipgloss.Style
	Ignored    lipgloss.Style
	Suite      lipgloss.Style
	Detail     lipgloss.Style

	// Status bar
	StatusBar   lipgloss.Style
	StatusKey   lipgloss.Style
	StatusValue lipgloss.Style

	// General
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
}

// DefaultTheme returns the default theme with adaptive colors.
func DefaultTheme() Theme {
	return Theme{
		TitleBar: lipgloss.NewStyle().
			Bold(true).
			Background(ColorPrimary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1),
		TitleHint: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#C7C5FF", Dark: "#A8A5FF"}),

		Passed:     lipgloss.NewStyle().Foreground(ColorSuccess),
		Failed:     lipgloss.NewStyle().Bold(true).Foreground(ColorError),
		Assumption: lipgloss.NewStyle().Foreground(ColorWarning),
		Ignored:    lipgloss.NewStyle().Foreground(ColorMuted),
		Suite:      lipgloss.NewStyle().Bold(true),
		Detail:     lipgloss.NewStyle().Foreground(ColorMuted).PaddingLeft(4),

		StatusBar: lipgloss.NewStyle().
			Foreground(ColorMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(ColorSubtle),
		StatusKey:   lipgloss.NewStyle().Foreground(ColorMuted),
		StatusValue: lipgloss.NewStyle().Bold(true),

		HelpKey:  lipgloss.NewStyle().Bold(true).Foreground(ColorAccent),
		HelpDesc: lipgloss.NewStyle().Foreground(ColorMuted),
	}
}
