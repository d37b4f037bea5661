package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bmatcuk/doublestar/v4"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/AbdelazizMoustafa10m/spectrum/internal/report"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/tui"
)

// maxReportReaders bounds how many report files are decoded at once.
const maxReportReaders = 8

// errReportFailures is returned by "report summary" when any report records
// a failure, so that scripts can rely on the exit code.
var errReportFailures = errors.New("reports contain failures")

var reportSummaryJSON bool

// reportCmd groups the commands that read NDJSON run reports.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Read NDJSON run reports",
	Long:  "Summarize or browse the NDJSON event reports written by spectrum runs.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var reportSummaryCmd = &cobra.Command{
	Use:   "summary <file|glob>...",
	Short: "Tally the outcomes of one or more reports",
	Long: `Decode each report and print the passed, failed, ignored and assumption
counts per file plus a total. Arguments may be doublestar globs such as
"spectrum-reports/**/*.ndjson". Exits non-zero when any report has failures.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReportSummary,
}

var reportViewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Browse a report interactively",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := readReportFile(args[0])
		if err != nil {
			return err
		}
		model := tui.NewReportModel(filepath.Base(args[0]), events)
		p := tea.NewProgram(model, tea.WithAltScreen(),
			tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
		_, err = p.Run()
		return err
	},
}

func init() {
	reportSummaryCmd.Flags().BoolVar(&reportSummaryJSON, "json", false, "Output the summary as JSON")
	reportCmd.AddCommand(reportSummaryCmd)
	reportCmd.AddCommand(reportViewCmd)
	rootCmd.AddCommand(reportCmd)
}

// fileSummary is the tally of a single report file.
type fileSummary struct {
	File string `json:"file"`
	report.Summary
}

// summaryOutput is the JSON shape of "report summary --json".
type summaryOutput struct {
	Files []fileSummary  `json:"files"`
	Total report.Summary `json:"total"`
}

func runReportSummary(cmd *cobra.Command, args []string) error {
	files, err := expandReportArgs(args)
	if err != nil {
		return err
	}

	summaries := make([]fileSummary, len(files))
	g, _ := errgroup.WithContext(cmd.Context())
	g.SetLimit(maxReportReaders)
	for i, file := range files {
		g.Go(func() error {
			events, err := readReportFile(file)
			if err != nil {
				return err
			}
			summaries[i] = fileSummary{File: file, Summary: report.Summarize(events)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var total report.Summary
	for _, s := range summaries {
		total = total.Add(s.Summary)
	}

	out := cmd.OutOrStdout()
	if reportSummaryJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summaryOutput{Files: summaries, Total: total}); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, renderSummaryTable(summaries, total))
	}

	if !total.OK() {
		return errReportFailures
	}
	return nil
}

// expandReportArgs resolves every argument as a doublestar glob. An argument
// without glob metacharacters is returned as is so that a missing file is
// reported by the reader rather than silently dropped.
func expandReportArgs(args []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	for _, arg := range args {
		if !hasGlobMeta(arg) {
			if !seen[arg] {
				seen[arg] = true
				files = append(files, arg)
			}
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no reports match %q", arg)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	return files, nil
}

func hasGlobMeta(s string) bool {
	for _, r := range s {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

func readReportFile(path string) ([]report.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening report: %w", err)
	}
	defer f.Close()

	events, err := report.ReadEvents(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return events, nil
}

var (
	styleTableHeader = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	styleTableCell   = lipgloss.NewStyle().Padding(0, 1)
)

// renderSummaryTable lays the per-file summaries out as a bordered table with
// a trailing total row.
func renderSummaryTable(summaries []fileSummary, total report.Summary) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("REPORT", "PASSED", "FAILED", "IGNORED", "ASSUMPTIONS").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader
			}
			return styleTableCell
		})
	for _, s := range summaries {
		t.Row(summaryRow(s.File, s.Summary)...)
	}
	t.Row(summaryRow("total", total)...)
	return t.String()
}

func summaryRow(name string, s report.Summary) []string {
	return []string{
		name,
		strconv.Itoa(s.Passed),
		strconv.Itoa(s.Failed),
		strconv.Itoa(s.Ignored),
		strconv.Itoa(s.Assumptions),
	}
}
