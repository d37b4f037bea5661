package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdelazizMoustafa10m/spectrum/internal/report"
)

// sampleEvents records a small run: one pass, one failure with a two-line
// cause, one ignored spec, an assumption failure, and a failed suite hook.
func sampleEvents() []report.Event {
	rec := report.NewRecorder()
	root := report.NewRoot("calc")
	suite := root.Child("add", report.KindSuite)
	pass := suite.Child("sums", report.KindSpec)
	fail := suite.Child("overflows", report.KindSpec)
	soft := root.Child("offline", report.KindSpec)

	rec.Started(pass)
	rec.Finished(pass)
	rec.Started(fail)
	rec.Failed(fail, errors.New("want 0\ngot 1"))
	rec.Finished(fail)
	rec.Ignored(suite.Child("later", report.KindSpec))
	rec.Started(soft)
	rec.AssumptionFailed(soft, &report.AssumptionError{Reason: "no network"})
	rec.Finished(soft)
	rec.Failed(suite, errors.New("cleanup failed"))
	return rec.Events()
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCollect(t *testing.T) {
	t.Parallel()

	nodes := Collect(sampleEvents())
	require.Len(t, nodes, 5)

	byID := make(map[string]Node)
	for _, n := range nodes {
		byID[n.ID] = n
	}
	assert.Equal(t, OutcomePassed, byID["calc/add/sums"].Outcome)
	assert.Equal(t, 2, byID["calc/add/sums"].Depth)
	assert.Equal(t, OutcomeFailed, byID["calc/add/overflows"].Outcome)
	assert.Equal(t, []string{"want 0\ngot 1"}, byID["calc/add/overflows"].Messages)
	assert.Equal(t, OutcomeIgnored, byID["calc/add/later"].Outcome)
	assert.Equal(t, OutcomeAssumption, byID["calc/offline"].Outcome)
	assert.Equal(t, OutcomeFailed, byID["calc/add"].Outcome)
	assert.Equal(t, "calc/add/sums", nodes[0].ID, "nodes keep first-appearance order")
}

func TestCollect_Unfinished(t *testing.T) {
	t.Parallel()

	rec := report.NewRecorder()
	rec.Started(report.NewRoot("r").Child("hung", report.KindSpec))
	nodes := Collect(rec.Events())
	require.Len(t, nodes, 1)
	assert.Equal(t, OutcomeUnfinished, nodes[0].Outcome)
	assert.Equal(t, "unfinished", nodes[0].Outcome.String())
}

func TestReportModel_ToggleFailures(t *testing.T) {
	t.Parallel()

	m := NewReportModel("calc.ndjson", sampleEvents())
	all := strings.Join(m.Lines(), "\n")
	assert.Contains(t, all, "sums")
	assert.Contains(t, all, "later (ignored)")

	updated, cmd := m.Update(keyRunes("f"))
	assert.Nil(t, cmd)
	m = updated.(ReportModel)
	require.True(t, m.FailuresOnly())

	failures := strings.Join(m.Lines(), "\n")
	assert.NotContains(t, failures, "sums")
	assert.NotContains(t, failures, "later")
	assert.Contains(t, failures, "calc/add/overflows")
	assert.Contains(t, failures, "got 1")
	assert.Contains(t, failures, "cleanup failed")

	updated, _ = m.Update(keyRunes("f"))
	assert.False(t, updated.(ReportModel).FailuresOnly())
}

func TestReportModel_Quit(t *testing.T) {
	t.Parallel()

	m := NewReportModel("x", nil)
	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestReportModel_View(t *testing.T) {
	t.Parallel()

	m := NewReportModel("calc.ndjson", sampleEvents())
	assert.Empty(t, m.View(), "nothing is rendered before the window size is known")

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 200, Height: 20})
	view := updated.(ReportModel).View()
	assert.Contains(t, view, "spectrum report")
	assert.Contains(t, view, "calc.ndjson")
	assert.Contains(t, view, "overflows")
	assert.Contains(t, view, "failures only")
	assert.Equal(t, report.Summary{Passed: 1, Failed: 2, Ignored: 1, Assumptions: 1}, m.Summary())
}

func TestReportModel_EmptyPlaceholder(t *testing.T) {
	t.Parallel()

	m := NewReportModel("empty", nil)
	m.SetDimensions(80, 10)
	assert.Contains(t, m.View(), "No events")

	updated, _ := m.Update(keyRunes("f"))
	assert.Contains(t, updated.(ReportModel).View(), "No failures")
}

func TestReportModel_Scrolling(t *testing.T) {
	t.Parallel()

	rec := report.NewRecorder()
	root := report.NewRoot("r")
	for i := range 50 {
		d := root.Child(strings.Repeat("x", i+1), report.KindSpec)
		rec.Started(d)
		rec.Finished(d)
	}
	m := NewReportModel("long", rec.Events())
	m.SetDimensions(80, 13)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	m = updated.(ReportModel)
	assert.True(t, m.viewport.AtBottom())

	updated, _ = m.Update(keyRunes("g"))
	m = updated.(ReportModel)
	assert.True(t, m.viewport.AtTop())

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.False(t, updated.(ReportModel).viewport.AtTop())
}
