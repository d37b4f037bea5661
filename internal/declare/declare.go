// Package declare runs declaration blocks against an explicit stack of
// suites. Each tree owns its own Stack, so independent trees can be declared
// concurrently without sharing state.
package declare

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/charmbracelet/log"

	"github.com/AbdelazizMoustafa10m/spectrum/internal/blockconfig"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/tree"
)

// ErrorSpecName names the spec that stands in for a suite whose declaration
// block panicked.
const ErrorSpecName = "encountered an error"

// DeclarationError is the failure of the stand-in spec for a suite whose
// declaration block panicked.
type DeclarationError struct {
	Suite string
	Value any
	Stack []byte
}

func (e *DeclarationError) Error() string {
	return fmt.Sprintf("declaring %q: %v", e.Suite, e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *DeclarationError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Stack tracks which suite declarations currently apply to.
type Stack struct {
	suites []*tree.Suite
	logger *log.Logger
}

// NewStack returns an empty Stack. A nil logger disables logging.
func NewStack(logger *log.Logger) *Stack {
	return &Stack{logger: logger}
}

// Push makes s the current suite.
func (st *Stack) Push(s *tree.Suite) {
	st.suites = append(st.suites, s)
}

// Pop removes and returns the current suite, or nil when the stack is empty.
func (st *Stack) Pop() *tree.Suite {
	if len(st.suites) == 0 {
		return nil
	}
	s := st.suites[len(st.suites)-1]
	st.suites = st.suites[:len(st.suites)-1]
	return s
}

// Current returns the suite declarations apply to, or nil outside of any
// declaration block.
func (st *Stack) Current() *tree.Suite {
	if len(st.suites) == 0 {
		return nil
	}
	return st.suites[len(st.suites)-1]
}

// Depth returns the number of suites on the stack.
func (st *Stack) Depth() int {
	return len(st.suites)
}

// Declare runs block with s as the current suite and seals s afterwards. A
// panic escaping block discards everything block declared in s and replaces
// it with a single failing spec named ErrorSpecName.
func (st *Stack) Declare(s *tree.Suite, block func()) {
	st.Push(s)
	defer func() {
		r := recover()
		st.Pop()
		if r != nil {
			st.fail(s, r, debug.Stack())
		}
		s.Seal()
	}()
	block()
}

func (st *Stack) fail(s *tree.Suite, value any, stack []byte) {
	id := s.Description().ID()
	if st.logger != nil {
		st.logger.Warn("declaration failed", "suite", id, "error", value)
	}

	cause := &DeclarationError{Suite: id, Value: value, Stack: stack}
	s.Discard()
	if _, err := s.AddSpec(ErrorSpecName, func(context.Context) error { return cause }, blockconfig.Of()); err != nil && st.logger != nil {
		st.logger.Error("recording declaration failure", "suite", id, "error", err)
	}
}
