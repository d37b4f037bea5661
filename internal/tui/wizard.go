package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/AbdelazizMoustafa10m/spectrum/internal/config"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/tagging"
)

// DefaultReportFile is the report path proposed by the init wizard. Each
// root suite gets its own file.
const DefaultReportFile = "spectrum-reports/{name}.ndjson"

// ErrInitCancelled is returned when the user declines to write the file.
var ErrInitCancelled = errors.New("init cancelled")

// ---------------------------------------------------------------------------
// InitAnswers
// ---------------------------------------------------------------------------

// InitAnswers holds the raw values collected by the init wizard. Tag lists
// are comma-separated and numbers are kept as strings until Config parses
// them.
type InitAnswers struct {
	IncludeTags string
	ExcludeTags string
	Timeout     string
	RandomSeed  string
	ReportFile  string
	Console     bool
	Confirm     bool
}

// DefaultInitAnswers returns the answers used by "spectrum init --yes".
func DefaultInitAnswers() InitAnswers {
	return InitAnswers{
		RandomSeed: "0",
		ReportFile: DefaultReportFile,
		Confirm:    true,
	}
}

// Config converts the answers into a validated Config.
func (a InitAnswers) Config() (*config.Config, error) {
	if !a.Confirm {
		return nil, ErrInitCancelled
	}

	cfg := config.NewDefaults()
	if tags := tagging.ParseList(a.IncludeTags); tags != nil {
		cfg.Tags.Include = tags
	}
	if tags := tagging.ParseList(a.ExcludeTags); tags != nil {
		cfg.Tags.Exclude = tags
	}
	cfg.Run.Timeout = strings.TrimSpace(a.Timeout)
	if raw := strings.TrimSpace(a.RandomSeed); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("random seed must be an unsigned integer, got %q", raw)
		}
		cfg.Run.RandomSeed = seed
	}
	cfg.Report.File = strings.TrimSpace(a.ReportFile)
	cfg.Report.Console = a.Console

	result := config.Validate(cfg, nil)
	if errs := result.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("%s: %s", errs[0].Field, errs[0].Message)
	}
	return cfg, nil
}

// ---------------------------------------------------------------------------
// NewInitForm
// ---------------------------------------------------------------------------

// NewInitForm builds the init wizard bound to a. The form has three groups:
//  1. Tag selection
//  2. Run settings
//  3. Reporting and confirmation
func NewInitForm(a *InitAnswers) *huh.Form {
	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewInput().
				Title("Required tags").
				Description("Comma-separated. Only specs carrying one of them run.").
				Placeholder("fast, unit").
				Value(&a.IncludeTags).
				Validate(tagListValidator),
			huh.NewInput().
				Title("Excluded tags").
				Description("Comma-separated. Specs carrying any of them are ignored.").
				Placeholder("slow").
				Value(&a.ExcludeTags).
				Validate(tagListValidator),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Default timeout").
				Description("Per-spec time limit such as 30s. Leave empty for none.").
				Value(&a.Timeout).
				Validate(durationValidator),
			huh.NewInput().
				Title("Random seed").
				Description("Shuffles specs when non-zero.").
				Value(&a.RandomSeed).
				Validate(unsignedValidator("random seed")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Report file").
				Description("NDJSON event stream. {name} is replaced by the root suite name.").
				Value(&a.ReportFile),
			huh.NewConfirm().
				Title("Mirror events to the console?").
				Value(&a.Console),
			huh.NewConfirm().
				Title("Write spectrum.toml?").
				Affirmative("Write").
				Negative("Cancel").
				Value(&a.Confirm),
		),
	}

	return huh.NewForm(groups...).
		WithTheme(buildHuhTheme()).
		WithWidth(80).
		WithShowHelp(true)
}

// ---------------------------------------------------------------------------
// buildHuhTheme
// ---------------------------------------------------------------------------

// buildHuhTheme translates the TUI palette into a huh.Theme so that the
// wizard form matches the report viewer.
func buildHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Derive colors from the theme for consistent branding.
	t.Focused.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)
	t.Focused.NoteTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(ColorMuted)
	t.Focused.SelectSelector = lipgloss.NewStyle().
		Foreground(ColorAccent).
		SetString("> ")
	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(ColorAccent)
	t.Focused.UnselectedOption = lipgloss.NewStyle().
		Foreground(ColorMuted)
	t.Focused.FocusedButton = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(ColorPrimary).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Background(ColorHighlight).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E5E7EB"})
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(ColorSubtle)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(ColorAccent)
	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(ColorPrimary)

	// Blurred (non-focused) variants.
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(ColorMuted)
	t.Blurred.NoteTitle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginBottom(1)
	t.Blurred.Description = lipgloss.NewStyle().
		Foreground(ColorSubtle)
	t.Blurred.SelectSelector = lipgloss.NewStyle().
		Foreground(ColorSubtle).
		SetString("  ")
	t.Blurred.SelectedOption = lipgloss.NewStyle().
		Foreground(ColorMuted)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().
		Foreground(ColorSubtle)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().
		Foreground(ColorMuted)
	t.Blurred.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(ColorSubtle)
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)

	// Apply group-level header styles to match the focused field title.
	t.Group.Title = t.Focused.Title
	t.Group.Description = t.Focused.Description

	return t
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

// unsignedValidator returns a validation function that ensures the input
// parses as an unsigned integer. Empty input is accepted.
func unsignedValidator(fieldName string) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		if _, err := strconv.ParseUint(s, 10, 64); err != nil {
			return fmt.Errorf("%s must be a non-negative number", fieldName)
		}
		return nil
	}
}

func durationValidator(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("timeout must be a duration such as 30s or 2m")
	}
	if d < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

func tagListValidator(s string) error {
	for _, tag := range tagging.ParseList(s) {
		if strings.ContainsAny(tag, " \t") {
			return fmt.Errorf("tag %q must not contain whitespace", tag)
		}
	}
	return nil
}
