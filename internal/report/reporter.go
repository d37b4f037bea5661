package report

import (
	"errors"
	"fmt"
)

// Reporter is the sink the engine notifies while running a tree. Started and
// Finished bracket the execution of a spec; Failed may be called any number
// of times in between (or against a suite when a suite-level hook fails);
// Ignored replaces the Started/Finished pair for specs that do not run.
type Reporter interface {
	Started(d Description)
	Finished(d Description)
	Failed(d Description, err error)
	Ignored(d Description)
	AssumptionFailed(d Description, err error)
}

// AssumptionError marks a soft failure: the spec stopped because a
// precondition did not hold, not because the code under test is wrong.
type AssumptionError struct {
	Reason string
}

func (e *AssumptionError) Error() string {
	if e.Reason == "" {
		return "assumption failed"
	}
	return fmt.Sprintf("assumption failed: %s", e.Reason)
}

// IsAssumption reports whether err is, or wraps, an *AssumptionError.
func IsAssumption(err error) bool {
	var ae *AssumptionError
	return errors.As(err, &ae)
}

// Error reports err against d on the channel matching its kind: assumption
// errors go to AssumptionFailed, everything else to Failed. A nil err is
// ignored.
func Error(rep Reporter, d Description, err error) {
	if err == nil {
		return
	}
	if IsAssumption(err) {
		rep.AssumptionFailed(d, err)
		return
	}
	rep.Failed(d, err)
}

// Discard is a Reporter that drops every notification.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Started(Description)                 {}
func (discard) Finished(Description)                {}
func (discard) Failed(Description, error)           {}
func (discard) Ignored(Description)                 {}
func (discard) AssumptionFailed(Description, error) {}

// Multi returns a Reporter that forwards every notification to each of reps
// in order. Nil entries are skipped.
func Multi(reps ...Reporter) Reporter {
	var live []Reporter
	for _, r := range reps {
		if r != nil {
			live = append(live, r)
		}
	}
	if len(live) == 1 {
		return live[0]
	}
	return multi(live)
}

type multi []Reporter

func (m multi) Started(d Description) {
	for _, r := range m {
		r.Started(d)
	}
}

func (m multi) Finished(d Description) {
	for _, r := range m {
		r.Finished(d)
	}
}

func (m multi) Failed(d Description, err error) {
	for _, r := range m {
		r.Failed(d, err)
	}
}

func (m multi) Ignored(d Description) {
	for _, r := range m {
		r.Ignored(d)
	}
}

func (m multi) AssumptionFailed(d Description, err error) {
	for _, r := range m {
		r.AssumptionFailed(d, err)
	}
}
