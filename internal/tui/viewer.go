package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AbdelazizMoustafa10m/spectrum/internal/report"
)

// ---------------------------------------------------------------------------
// Outcome
// ---------------------------------------------------------------------------

// Outcome is the final state of one node in a report.
type Outcome int

const (
	// OutcomePassed is a node that finished without failures.
	OutcomePassed Outcome = iota
	// OutcomeFailed is a node with at least one failure.
	OutcomeFailed
	// OutcomeAssumption is a node stopped by a failed assumption.
	OutcomeAssumption
	// OutcomeIgnored is a node that was not run.
	OutcomeIgnored
	// OutcomeUnfinished is a node that started but never finished, as left
	// behind by an interrupted run.
	OutcomeUnfinished
)

func (o Outcome) String() string {
	switch o {
	case OutcomePassed:
		return "passed"
	case OutcomeFailed:
		return "failed"
	case OutcomeAssumption:
		return "assumption"
	case OutcomeIgnored:
		return "ignored"
	case OutcomeUnfinished:
		return "unfinished"
	default:
		return "unknown"
	}
}

// Node is the folded outcome of every event reported for one ID.
type Node struct {
	ID       string
	Name     string
	Depth    int
	Kind     report.Kind
	Outcome  Outcome
	Messages []string
	Duration time.Duration
}

// Collect folds an event stream into one Node per ID, in order of first
// appearance. Failures outrank assumption failures, which outrank ignores.
func Collect(events []report.Event) []Node {
	var nodes []Node
	index := make(map[string]int)
	finished := make(map[string]bool)

	for _, ev := range events {
		i, ok := index[ev.ID]
		if !ok {
			i = len(nodes)
			index[ev.ID] = i
			nodes = append(nodes, Node{
				ID:      ev.ID,
				Name:    ev.Name,
				Depth:   len(ev.Path),
				Kind:    ev.Kind,
				Outcome: OutcomeUnfinished,
			})
		}
		n := &nodes[i]
		switch ev.Type {
		case report.EventFailed:
			n.Outcome = OutcomeFailed
			n.Messages = append(n.Messages, ev.Error)
		case report.EventAssumptionFailed:
			if n.Outcome != OutcomeFailed {
				n.Outcome = OutcomeAssumption
			}
			n.Messages = append(n.Messages, ev.Error)
		case report.EventIgnored:
			if n.Outcome == OutcomeUnfinished {
				n.Outcome = OutcomeIgnored
			}
		case report.EventFinished:
			finished[ev.ID] = true
			n.Duration = time.Duration(ev.DurationMS) * time.Millisecond
		}
	}

	for i := range nodes {
		if nodes[i].Outcome == OutcomeUnfinished && finished[nodes[i].ID] {
			nodes[i].Outcome = OutcomePassed
		}
	}
	return nodes
}

// ---------------------------------------------------------------------------
// ReportModel
// ---------------------------------------------------------------------------

// ReportModel is the Bubble Tea model of the report viewer. It renders the
// nodes of one report file into a scrollable viewport with a title bar and a
// status bar. Pressing f toggles between every node and failures only.
type ReportModel struct {
	theme        Theme
	keys         KeyMap
	title        string
	nodes        []Node
	summary      report.Summary
	failuresOnly bool
	width        int
	height       int
	viewport     viewport.Model
}

// NewReportModel creates a viewer for events under the given title.
func NewReportModel(title string, events []report.Event) ReportModel {
	m := ReportModel{
		theme:    DefaultTheme(),
		keys:     DefaultKeyMap(),
		title:    title,
		nodes:    Collect(events),
		summary:  report.Summarize(events),
		viewport: viewport.New(0, 0),
	}
	m.rebuildContent()
	return m
}

// FailuresOnly reports whether only failed nodes are shown.
func (m ReportModel) FailuresOnly() bool { return m.failuresOnly }

// Summary returns the tally of the report.
func (m ReportModel) Summary() report.Summary { return m.summary }

// SetDimensions resizes the viewer. Three rows are reserved for the title
// bar and the bordered status bar.
func (m *ReportModel) SetDimensions(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-3, 0)
	m.rebuildContent()
}

// Lines returns the rendered content lines for the current filter.
func (m ReportModel) Lines() []string {
	var lines []string
	for _, n := range m.nodes {
		if m.failuresOnly && n.Outcome != OutcomeFailed {
			continue
		}
		lines = append(lines, m.formatNode(n)...)
	}
	return lines
}

func (m *ReportModel) rebuildContent() {
	lines := m.Lines()
	if len(lines) == 0 {
		placeholder := "No events"
		if m.failuresOnly {
			placeholder = "No failures"
		}
		m.viewport.SetContent(lipgloss.NewStyle().Foreground(ColorMuted).Render(placeholder))
		return
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

// formatNode renders a status line for n followed by its messages. In
// failures-only mode nodes are listed flat under their full ID.
func (m ReportModel) formatNode(n Node) []string {
	indent := strings.Repeat("  ", n.Depth)
	name := n.Name
	if m.failuresOnly {
		indent, name = "", n.ID
	}

	var status string
	switch n.Outcome {
	case OutcomePassed:
		status = m.theme.Passed.Render("✓ " + name)
		if n.Kind == report.KindSuite {
			status = m.theme.Suite.Render(name)
		} else if n.Duration > 0 {
			status += m.theme.Ignored.Render(fmt.Sprintf(" (%s)", n.Duration))
		}
	case OutcomeFailed:
		status = m.theme.Failed.Render("✗ " + name)
	case OutcomeAssumption:
		status = m.theme.Assumption.Render("? " + name)
	case OutcomeIgnored:
		status = m.theme.Ignored.Render("- " + name + " (ignored)")
	default:
		status = m.theme.Assumption.Render("… " + name + " (unfinished)")
	}

	lines := []string{indent + status}
	for _, msg := range n.Messages {
		for _, l := range strings.Split(msg, "\n") {
			lines = append(lines, indent+m.theme.Detail.Render(l))
		}
	}
	return lines
}

// ---------------------------------------------------------------------------
// tea.Model
// ---------------------------------------------------------------------------

// Init implements tea.Model.
func (m ReportModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
//
// Handled messages:
//   - tea.WindowSizeMsg: resizes the viewport
//   - tea.KeyMsg: quit, failures-only toggle, and scrolling
func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetDimensions(msg.Width, msg.Height)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m ReportModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.ToggleFailures):
		m.failuresOnly = !m.failuresOnly
		m.rebuildContent()
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.Up):
		m.viewport.ScrollUp(1)
	case key.Matches(msg, m.keys.Down):
		m.viewport.ScrollDown(1)
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.PageDown()
	case key.Matches(msg, m.keys.Home):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.End):
		m.viewport.GotoBottom()
	}
	return m, nil
}

// View implements tea.Model. It renders nothing until the first
// WindowSizeMsg arrives.
func (m ReportModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	title := m.theme.TitleBar.Render("spectrum report") + " " + m.theme.TitleHint.Render(m.title)
	if m.failuresOnly {
		title += " " + m.theme.Failed.Render("[failures only]")
	}

	status := fmt.Sprintf("%s %s  %s %s  %s %s  %s %s    %s",
		m.theme.StatusKey.Render("passed"), m.theme.StatusValue.Render(fmt.Sprint(m.summary.Passed)),
		m.theme.StatusKey.Render("failed"), m.theme.StatusValue.Render(fmt.Sprint(m.summary.Failed)),
		m.theme.StatusKey.Render("ignored"), m.theme.StatusValue.Render(fmt.Sprint(m.summary.Ignored)),
		m.theme.StatusKey.Render("assumptions"), m.theme.StatusValue.Render(fmt.Sprint(m.summary.Assumptions)),
		helpLine(m.theme, m.keys.ShortHelp()))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.viewport.View(),
		m.theme.StatusBar.Width(m.width).Render(status),
	)
}
