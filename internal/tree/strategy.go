package tree

import (
	"context"
	"errors"
	"sync"

	"github.com/AbdelazizMoustafa10m/spectrum/internal/hooks"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/report"
)

// stepFailedReason is the ignore reason for composite steps skipped after a
// failure.
const stepFailedReason = "a previous step failed"

var errStepFailed = errors.New("step failed")

// strategy runs a suite's children.
type strategy func(ctx context.Context, s *Suite, x *execution, eachLeaf hooks.Hooks)

func runAll(ctx context.Context, s *Suite, x *execution, eachLeaf hooks.Hooks) {
	for _, c := range s.ordered() {
		s.runChild(ctx, x, c, eachLeaf)
	}
}

// abortOnFailure runs children until one fails or has an assumption fail;
// every later child is ignored before it would run.
func abortOnFailure(ctx context.Context, s *Suite, x *execution, eachLeaf hooks.Hooks) {
	obs := &failureObserver{Reporter: x.rep}
	stepX := x.with(obs)
	for _, c := range s.ordered() {
		if obs.failed() {
			c.Ignore(stepFailedReason)
		} else if err := ctx.Err(); err != nil {
			c.Ignore(err.Error())
		}
		s.runChild(ctx, stepX, c, eachLeaf)
	}
}

// failureObserver forwards to the wrapped reporter and remembers the first
// failure or failed assumption.
type failureObserver struct {
	report.Reporter

	mu    sync.Mutex
	first error
}

func (o *failureObserver) failed() bool {
	return o.firstFailure() != nil
}

func (o *failureObserver) firstFailure() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.first
}

func (o *failureObserver) record(err error) {
	if err == nil {
		err = errStepFailed
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.first == nil {
		o.first = err
	}
}

func (o *failureObserver) Failed(d report.Description, err error) {
	o.record(err)
	o.Reporter.Failed(d, err)
}

func (o *failureObserver) AssumptionFailed(d report.Description, err error) {
	o.record(err)
	o.Reporter.AssumptionFailed(d, err)
}
