package report

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	consolePass       = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#4ADE80"})
	consoleFail       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"})
	consoleAssumption = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"})
	consoleIgnored    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})
	consoleDetail     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}).PaddingLeft(4)
)

// Console is a Reporter that prints one line per finished or ignored node,
// indented by nesting depth, with failure causes listed underneath.
type Console struct {
	mu       sync.Mutex
	w        io.Writer
	started  map[string]time.Time
	failures map[string][]string
	soft     map[string][]string
}

// NewConsole returns a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{
		w:        w,
		started:  make(map[string]time.Time),
		failures: make(map[string][]string),
		soft:     make(map[string][]string),
	}
}

func (c *Console) Started(d Description) {
	c.mu.Lock()
	c.started[d.ID()] = time.Now()
	c.mu.Unlock()
}

func (c *Console) Finished(d Description) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := d.ID()
	elapsed := time.Since(c.started[id]).Round(time.Millisecond)
	delete(c.started, id)

	switch {
	case len(c.failures[id]) > 0:
		c.line(d, consoleFail.Render("✗ "+d.Name), c.failures[id])
	case len(c.soft[id]) > 0:
		c.line(d, consoleAssumption.Render("? "+d.Name), c.soft[id])
	default:
		c.line(d, consolePass.Render("✓ "+d.Name)+consoleIgnored.Render(fmt.Sprintf(" (%s)", elapsed)), nil)
	}
	delete(c.failures, id)
	delete(c.soft, id)
}

func (c *Console) Failed(d Description, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := d.ID()
	if _, running := c.started[id]; !running {
		c.line(d, consoleFail.Render("✗ "+d.Name), []string{err.Error()})
		return
	}
	c.failures[id] = append(c.failures[id], err.Error())
}

func (c *Console) AssumptionFailed(d Description, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := d.ID()
	if _, running := c.started[id]; !running {
		c.line(d, consoleAssumption.Render("? "+d.Name), []string{err.Error()})
		return
	}
	c.soft[id] = append(c.soft[id], err.Error())
}

func (c *Console) Ignored(d Description) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.line(d, consoleIgnored.Render("- "+d.Name+" (ignored)"), nil)
}

// line writes a status line for d followed by its details. Callers hold c.mu.
func (c *Console) line(d Description, status string, details []string) {
	indent := strings.Repeat("  ", len(d.Path))
	fmt.Fprintf(c.w, "%s%s\n", indent, status)
	for _, detail := range details {
		for _, l := range strings.Split(detail, "\n") {
			fmt.Fprintf(c.w, "%s%s\n", indent, consoleDetail.Render(l))
		}
	}
}
