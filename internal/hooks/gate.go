package hooks

import (
	"context"
	"sync"

	"github.com/AbdelazizMoustafa10m/spectrum/internal/report"
)

type gateKey struct{}

// gate marks one execution started by Timeout. Once closed, nothing running
// under it may report any more.
type gate struct {
	parent   *gate
	mu       sync.Mutex
	drained  *sync.Cond
	closed   bool
	inflight int
}

func withGate(ctx context.Context) (context.Context, *gate) {
	g := &gate{parent: gateFrom(ctx)}
	g.drained = sync.NewCond(&g.mu)
	return context.WithValue(ctx, gateKey{}, g), g
}

func gateFrom(ctx context.Context) *gate {
	g, _ := ctx.Value(gateKey{}).(*gate)
	return g
}

func (g *gate) enter() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return false
	}
	g.inflight++
	return true
}

func (g *gate) leave() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inflight--
	if g.inflight == 0 {
		g.drained.Broadcast()
	}
}

// close silences the gate and waits for reports in flight to land.
func (g *gate) close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	for g.inflight > 0 {
		g.drained.Wait()
	}
}

// Reporter returns rep as seen by code running under ctx. When ctx belongs
// to an execution a Timeout hook gave up on, the returned reporter drops
// every notification, so an abandoned body cannot report after its node
// finished.
func Reporter(ctx context.Context, rep report.Reporter) report.Reporter {
	g := gateFrom(ctx)
	if g == nil {
		return rep
	}
	if gr, ok := rep.(*gatedReporter); ok && gr.gate == g {
		return rep
	}
	return &gatedReporter{next: rep, gate: g}
}

type gatedReporter struct {
	next report.Reporter
	gate *gate
}

// forward calls fn unless any enclosing gate is closed. Each gate counts fn
// as in flight so that close returns only after it landed.
func (r *gatedReporter) forward(fn func(report.Reporter)) {
	var entered []*gate
	defer func() {
		for _, g := range entered {
			g.leave()
		}
	}()
	for g := r.gate; g != nil; g = g.parent {
		if !g.enter() {
			return
		}
		entered = append(entered, g)
	}
	fn(r.next)
}

func (r *gatedReporter) Started(d report.Description) {
	r.forward(func(rep report.Reporter) { rep.Started(d) })
}

func (r *gatedReporter) Finished(d report.Description) {
	r.forward(func(rep report.Reporter) { rep.Finished(d) })
}

func (r *gatedReporter) Ignored(d report.Description) {
	r.forward(func(rep report.Reporter) { rep.Ignored(d) })
}

func (r *gatedReporter) Failed(d report.Description, err error) {
	r.forward(func(rep report.Reporter) { rep.Failed(d, err) })
}

func (r *gatedReporter) AssumptionFailed(d report.Description, err error) {
	r.forward(func(rep report.Reporter) { rep.AssumptionFailed(d, err) })
}
