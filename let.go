package spectrum

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"sync"

	"github.com/AbdelazizMoustafa10m/spectrum/internal/hooks"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/report"
)

// ErrValueNotAvailable is returned when a Value is read outside of the
// specs it was declared for.
var ErrValueNotAvailable = errors.New("spectrum: value read outside of a running spec")

// ConstructionError is the cause reported when a Value could not be built.
type ConstructionError struct {
	// Target names what was being constructed.
	Target string
	Err    error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("constructing %s: %v", e.Target, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// Value is a per-spec value declared with Let, Eager, Fixture or TempDir.
// Every spec in the declaring suite and its descendants sees a fresh value,
// built on first use (Let) or before the spec starts (the others), and
// released after the spec. A Value declared outside a composite suite is
// shared by all of the composite's steps.
//
// Get and Lookup are safe to call from goroutines a spec starts.
type Value[V any] struct {
	target  string
	supply  func() (V, error)
	release func(V) error

	mu  sync.Mutex
	cur *valueState[V]
}

// valueState is the value of one execution. Each begin starts a new one, so
// an execution ending late releases only what it built.
type valueState[V any] struct {
	mu    sync.Mutex
	built bool
	val   V
	err   error
}

// Get returns the value for the running spec. It panics with the
// construction error when the value cannot be built, which fails the spec.
func (v *Value[V]) Get() V {
	val, err := v.Lookup()
	if err != nil {
		panic(err)
	}
	return val
}

// Lookup returns the value for the running spec, building it if needed. A
// body abandoned by its time limit that keeps running sees the value of
// whichever spec runs next.
func (v *Value[V]) Lookup() (V, error) {
	v.mu.Lock()
	st := v.cur
	v.mu.Unlock()
	if st == nil {
		var zero V
		return zero, ErrValueNotAvailable
	}
	return st.get(v)
}

func (st *valueState[V]) get(v *Value[V]) (V, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if !st.built {
		val, err := v.supply()
		if err != nil {
			err = &ConstructionError{Target: v.target, Err: err}
		}
		st.val, st.err, st.built = val, err, true
	}
	return st.val, st.err
}

func (v *Value[V]) begin() *valueState[V] {
	st := &valueState[V]{}
	v.mu.Lock()
	v.cur = st
	v.mu.Unlock()
	return st
}

// end retires st and releases its value. The current state is cleared only
// if st is still current.
func (v *Value[V]) end(st *valueState[V]) error {
	v.mu.Lock()
	if v.cur == st {
		v.cur = nil
	}
	v.mu.Unlock()

	st.mu.Lock()
	defer st.mu.Unlock()
	if !st.built || st.err != nil || v.release == nil {
		return nil
	}
	var zero V
	val := st.val
	st.val = zero
	return v.release(val)
}

// hook scopes the value to each wrapped execution. A release failure fails
// the spec, or is reported next to the spec's own failure.
func (v *Value[V]) hook(eager bool) hooks.Hook {
	return func(ctx context.Context, d report.Description, rep report.Reporter, block hooks.Block) (err error) {
		st := v.begin()
		defer func() {
			releaseErr := v.end(st)
			if releaseErr == nil {
				return
			}
			releaseErr = fmt.Errorf("releasing %s: %w", v.target, releaseErr)
			if err == nil {
				err = releaseErr
				return
			}
			report.Error(rep, d, releaseErr)
		}()
		if eager {
			if _, err := st.get(v); err != nil {
				return err
			}
		}
		return block(ctx)
	}
}

func declareValue[V any](s *DSL, target string, supply func() (V, error), release func(V) error, eager bool) *Value[V] {
	v := &Value[V]{target: target, supply: supply, release: release}
	s.hook(v.hook(eager), hooks.ScopeEachLeaf, hooks.PrecedenceLocal)
	return v
}

func typeName[V any]() string {
	return reflect.TypeFor[V]().String()
}

// Let declares a lazily built per-spec value.
func Let[V any](s *DSL, supply func() V) *Value[V] {
	return declareValue(s, "let "+typeName[V](), func() (V, error) { return supply(), nil }, nil, false)
}

// Eager declares a per-spec value built before each spec starts.
func Eager[V any](s *DSL, supply func() V) *Value[V] {
	return declareValue(s, "eager "+typeName[V](), func() (V, error) { return supply(), nil }, nil, true)
}

// Fixture declares a per-spec resource built before each spec starts. A
// construction error fails the spec with a *ConstructionError. A fixture
// implementing io.Closer is closed after the spec.
func Fixture[F any](s *DSL, construct func() (F, error)) *Value[F] {
	release := func(f F) error {
		if c, ok := any(f).(io.Closer); ok {
			return c.Close()
		}
		return nil
	}
	return declareValue(s, typeName[F](), construct, release, true)
}

// TempDir declares a fresh temporary directory per spec, removed with its
// contents afterwards.
func TempDir(s *DSL) *Value[string] {
	construct := func() (string, error) { return os.MkdirTemp("", "spectrum-") }
	return declareValue(s, "temporary directory", construct, os.RemoveAll, true)
}
