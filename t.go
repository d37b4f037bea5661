package spectrum

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/AbdelazizMoustafa10m/spectrum/internal/hooks"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/report"
)

// errMarkedFailed is returned for a body that called Fail without a message.
var errMarkedFailed = errors.New("marked as failed")

// FailureError is the cause reported for a body that recorded failures
// through T.
type FailureError struct {
	Messages []string
}

func (e *FailureError) Error() string {
	return strings.Join(e.Messages, "\n")
}

type (
	failNowSignal struct{}
	skipSignal    struct{ reason string }
)

// T is the handle passed to spec and hook bodies. It satisfies the TestingT
// interfaces of testify's assert and require packages. Its methods are safe
// to call from goroutines the body starts. FailNow, Fatal and Skip stop a
// goroutine by panicking, so they may only be called from the body's own
// goroutine or from one started with Go. Called from any other goroutine
// they crash the program.
type T struct {
	ctx    context.Context
	name   string
	logger *log.Logger
	wg     sync.WaitGroup

	mu       sync.Mutex
	failed   bool
	messages []string
	skip     *string
}

func newT(ctx context.Context, logger *log.Logger) *T {
	name := ""
	if d, ok := report.FromContext(ctx); ok {
		name = d.ID()
	}
	return &T{ctx: ctx, name: name, logger: logger}
}

// Name returns the ID of the spec being run (for AfterAll and AroundAll,
// the suite).
func (t *T) Name() string { return t.name }

// Context returns the context of the run. It is cancelled when the spec's
// time limit expires.
func (t *T) Context() context.Context { return t.ctx }

// Helper is a no-op that lets T satisfy helper-aware interfaces.
func (t *T) Helper() {}

// Fail marks the body failed and lets it continue.
func (t *T) Fail() {
	t.mu.Lock()
	t.failed = true
	t.mu.Unlock()
}

// Failed reports whether the body has been marked failed.
func (t *T) Failed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failed
}

// Error records a failure message and lets the body continue.
func (t *T) Error(args ...any) {
	t.record(sprintln(args...))
}

// Errorf records a formatted failure message and lets the body continue.
func (t *T) Errorf(format string, args ...any) {
	t.record(fmt.Sprintf(format, args...))
}

// Go runs fn on a new goroutine that may call FailNow, Fatal or Skip; each
// stops only fn. A panic in fn fails the body. The body does not finish
// until every fn it started has returned.
func (t *T) Go(fn func()) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				t.recovered(r)
			}
		}()
		fn()
	}()
}

// recovered records a panic value caught on a goroutine started with Go.
func (t *T) recovered(r any) {
	switch sig := r.(type) {
	case failNowSignal:
	case skipSignal:
		t.mu.Lock()
		if t.skip == nil {
			t.skip = &sig.reason
		}
		t.mu.Unlock()
	default:
		t.record(fmt.Sprintf("panic: %v", r))
	}
}

// FailNow marks the body failed and stops it. See T for the goroutines it
// may be called from.
func (t *T) FailNow() {
	t.Fail()
	panic(failNowSignal{})
}

// Fatal is Error followed by FailNow.
func (t *T) Fatal(args ...any) {
	t.Error(args...)
	t.FailNow()
}

// Fatalf is Errorf followed by FailNow.
func (t *T) Fatalf(format string, args ...any) {
	t.Errorf(format, args...)
	t.FailNow()
}

// Skip stops the body and reports a failed assumption with the given
// reason. A body that already failed stays failed. See T for the goroutines
// it may be called from.
func (t *T) Skip(args ...any) {
	panic(skipSignal{reason: sprintln(args...)})
}

// Skipf is Skip with a formatted reason.
func (t *T) Skipf(format string, args ...any) {
	panic(skipSignal{reason: fmt.Sprintf(format, args...)})
}

// Log writes a message to the run's logger.
func (t *T) Log(args ...any) {
	t.log(sprintln(args...))
}

// Logf writes a formatted message to the run's logger.
func (t *T) Logf(format string, args ...any) {
	t.log(fmt.Sprintf(format, args...))
}

func (t *T) log(msg string) {
	if t.logger != nil {
		t.logger.Info(msg, "spec", t.name)
	}
}

func (t *T) record(msg string) {
	t.mu.Lock()
	t.failed = true
	t.messages = append(t.messages, msg)
	t.mu.Unlock()
}

func (t *T) err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.failed {
		if t.skip != nil {
			return &report.AssumptionError{Reason: *t.skip}
		}
		return nil
	}
	if len(t.messages) == 0 {
		return errMarkedFailed
	}
	return &FailureError{Messages: append([]string(nil), t.messages...)}
}

// body adapts fn to a Block run with a fresh T.
func body(logger *log.Logger, fn func(*T)) hooks.Block {
	if fn == nil {
		return func(context.Context) error { return nil }
	}
	return func(ctx context.Context) (err error) {
		t := newT(ctx, logger)
		defer func() {
			r := recover()
			t.wg.Wait()
			if r != nil {
				switch sig := r.(type) {
				case failNowSignal:
				case skipSignal:
					if !t.Failed() {
						err = &report.AssumptionError{Reason: sig.reason}
						return
					}
				default:
					err = &hooks.PanicError{Value: r, Stack: debug.Stack()}
					return
				}
			}
			err = t.err()
		}()
		fn(t)
		return nil
	}
}

func sprintln(args ...any) string {
	return strings.TrimSuffix(fmt.Sprintln(args...), "\n")
}
