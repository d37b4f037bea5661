package spectrum

import (
	"sync"
	"testing"

	"github.com/AbdelazizMoustafa10m/spectrum/internal/report"
)

// Run builds the tree named name, runs it, and replays the outcome on t as
// nested subtests mirroring the tree: failed specs call t.Error with each
// cause, ignored specs are skipped with "ignored", and specs whose
// assumption failed are skipped with the cause. Failures of suite-level
// hooks fail the suite's subtest. A missing name or an invalid
// configuration fails t immediately.
func Run(t *testing.T, name string, declareFn func(*DSL), opts ...Option) Summary {
	t.Helper()

	runner, err := Build(name, declareFn, opts...)
	if err != nil {
		t.Fatal(err)
		return Summary{}
	}

	outcomes := newOutcomes()
	summary, err := runner.Run(t.Context(), outcomes)
	if err != nil {
		t.Error(err)
	}

	outcomes.replay(t, runner.Description())
	return summary
}

// outcome is everything reported about one node.
type outcome struct {
	failures   []error
	assumption error
	ignored    bool
	finished   bool
}

// outcomes is a Reporter collecting per-node outcomes for replay.
type outcomes struct {
	mu    sync.Mutex
	byID  map[string]*outcome
	order []string
}

func newOutcomes() *outcomes {
	return &outcomes{byID: make(map[string]*outcome)}
}

func (o *outcomes) get(d report.Description) *outcome {
	o.mu.Lock()
	defer o.mu.Unlock()
	id := d.ID()
	oc, ok := o.byID[id]
	if !ok {
		oc = &outcome{}
		o.byID[id] = oc
		o.order = append(o.order, id)
	}
	return oc
}

func (o *outcomes) Started(d report.Description) { o.get(d) }

func (o *outcomes) Finished(d report.Description) {
	oc := o.get(d)
	o.mu.Lock()
	oc.finished = true
	o.mu.Unlock()
}

func (o *outcomes) Failed(d report.Description, err error) {
	oc := o.get(d)
	o.mu.Lock()
	oc.failures = append(oc.failures, err)
	o.mu.Unlock()
}

func (o *outcomes) Ignored(d report.Description) {
	oc := o.get(d)
	o.mu.Lock()
	oc.ignored = true
	o.mu.Unlock()
}

func (o *outcomes) AssumptionFailed(d report.Description, err error) {
	oc := o.get(d)
	o.mu.Lock()
	if oc.assumption == nil {
		oc.assumption = err
	}
	o.mu.Unlock()
}

func (o *outcomes) lookup(id string) (outcome, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	oc, ok := o.byID[id]
	if !ok {
		return outcome{}, false
	}
	return *oc, true
}

// replay reports node's outcome on t and recurses into its children as
// subtests.
func (o *outcomes) replay(t *testing.T, node report.Tree) {
	t.Helper()
	oc, seen := o.lookup(node.ID())
	for _, err := range oc.failures {
		t.Errorf("%s: %v", node.ID(), err)
	}

	if node.Kind == report.KindSpec || len(node.Children) == 0 {
		switch {
		case len(oc.failures) > 0:
		case oc.assumption != nil:
			t.Skip(oc.assumption.Error())
		case oc.ignored:
			t.Skip("ignored")
		case !seen && node.Kind == report.KindSpec:
			t.Skip("not run")
		}
		return
	}

	if oc.assumption != nil {
		t.Log(oc.assumption.Error())
	}
	for _, child := range node.Children {
		t.Run(child.Name, func(t *testing.T) {
			o.replay(t, child)
		})
	}
}
