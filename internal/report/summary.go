package report

import (
	"fmt"
	"sync"
)

// Summary tallies the outcome of a run. Failed counts distinct nodes with at
// least one failure, which includes suites whose suite-level hooks failed.
type Summary struct {
	Passed      int `json:"passed"`
	Failed      int `json:"failed"`
	Ignored     int `json:"ignored"`
	Assumptions int `json:"assumptions"`
}

// Total returns the number of nodes accounted for in s.
func (s Summary) Total() int {
	return s.Passed + s.Failed + s.Ignored + s.Assumptions
}

// OK reports whether nothing failed.
func (s Summary) OK() bool { return s.Failed == 0 }

// Add returns the element-wise sum of s and o.
func (s Summary) Add(o Summary) Summary {
	return Summary{
		Passed:      s.Passed + o.Passed,
		Failed:      s.Failed + o.Failed,
		Ignored:     s.Ignored + o.Ignored,
		Assumptions: s.Assumptions + o.Assumptions,
	}
}

// String returns a one-line human-readable summary.
func (s Summary) String() string {
	return fmt.Sprintf("%d passed, %d failed, %d ignored, %d assumption failures",
		s.Passed, s.Failed, s.Ignored, s.Assumptions)
}

// tally accumulates per-ID outcomes and turns them into a Summary.
type tally struct {
	failed     map[string]bool
	assumption map[string]bool
	ignored    map[string]bool
	finished   map[string]bool
	order      []string
}

func newTally() *tally {
	return &tally{
		failed:     make(map[string]bool),
		assumption: make(map[string]bool),
		ignored:    make(map[string]bool),
		finished:   make(map[string]bool),
	}
}

func (t *tally) see(id string) {
	if !t.failed[id] && !t.assumption[id] && !t.ignored[id] && !t.finished[id] {
		t.order = append(t.order, id)
	}
}

func (t *tally) record(ev Event) {
	switch ev.Type {
	case EventFailed:
		t.see(ev.ID)
		t.failed[ev.ID] = true
	case EventAssumptionFailed:
		t.see(ev.ID)
		t.assumption[ev.ID] = true
	case EventIgnored:
		t.see(ev.ID)
		t.ignored[ev.ID] = true
	case EventFinished:
		t.see(ev.ID)
		t.finished[ev.ID] = true
	}
}

func (t *tally) summary() Summary {
	var s Summary
	for _, id := range t.order {
		switch {
		case t.failed[id]:
			s.Failed++
		case t.assumption[id]:
			s.Assumptions++
		case t.ignored[id]:
			s.Ignored++
		case t.finished[id]:
			s.Passed++
		}
	}
	return s
}

// Summarize tallies a recorded or decoded event stream.
func Summarize(events []Event) Summary {
	t := newTally()
	for _, ev := range events {
		t.record(ev)
	}
	return t.summary()
}

// Counting is a Reporter that tallies a Summary while forwarding every
// notification to next.
type Counting struct {
	mu    sync.Mutex
	next  Reporter
	tally *tally
}

// NewCounting returns a Counting reporter forwarding to next. A nil next
// discards notifications after counting them.
func NewCounting(next Reporter) *Counting {
	if next == nil {
		next = Discard
	}
	return &Counting{next: next, tally: newTally()}
}

func (c *Counting) record(t EventType, d Description, err error) {
	c.mu.Lock()
	c.tally.record(newEvent(t, d, err))
	c.mu.Unlock()
}

func (c *Counting) Started(d Description) { c.next.Started(d) }

func (c *Counting) Finished(d Description) {
	c.record(EventFinished, d, nil)
	c.next.Finished(d)
}

func (c *Counting) Failed(d Description, err error) {
	c.record(EventFailed, d, err)
	c.next.Failed(d, err)
}

func (c *Counting) Ignored(d Description) {
	c.record(EventIgnored, d, nil)
	c.next.Ignored(d)
}

func (c *Counting) AssumptionFailed(d Description, err error) {
	c.record(EventAssumptionFailed, d, err)
	c.next.AssumptionFailed(d, err)
}

// Summary returns the tally so far.
func (c *Counting) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tally.summary()
}
