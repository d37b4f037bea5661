package hooks

import (
	"cmp"
	"sync/atomic"
)

// Scope decides which executions a hook wraps.
type Scope int

const (
	// ScopeEachLeaf wraps every atomic descendant (spec or composite suite)
	// of the declaring suite, propagating through nested plain suites.
	ScopeEachLeaf Scope = iota
	// ScopeThisLevel wraps each direct child of the declaring suite.
	ScopeThisLevel
	// ScopeOnce wraps the declaring suite's children as a whole, once.
	ScopeOnce
)

func (s Scope) String() string {
	switch s {
	case ScopeEachLeaf:
		return "each-leaf"
	case ScopeThisLevel:
		return "this-level"
	case ScopeOnce:
		return "once"
	default:
		return "unknown"
	}
}

// Precedence orders hooks competing to wrap the same execution. Higher
// values nest further out: they run first on the way in and last on the way
// out.
type Precedence int

const (
	// PrecedenceCleanUpGlobal is for suite-wide teardown (afterAll).
	PrecedenceCleanUpGlobal Precedence = iota
	// PrecedenceCleanUpLocal is for per-spec teardown (afterEach).
	PrecedenceCleanUpLocal
	// PrecedenceLocal is for per-spec set-up and wrapping (beforeEach,
	// aroundEach, let values, fixtures).
	PrecedenceLocal
	// PrecedenceSetUp is for one-time set-up (beforeAll).
	PrecedenceSetUp
	// PrecedenceOuter is for hooks wrapping everything in a suite (aroundAll).
	PrecedenceOuter
	// PrecedenceRoot is reserved for wrappers the runner installs itself,
	// such as timeouts.
	PrecedenceRoot
)

func (p Precedence) String() string {
	switch p {
	case PrecedenceCleanUpGlobal:
		return "clean-up-global"
	case PrecedenceCleanUpLocal:
		return "clean-up-local"
	case PrecedenceLocal:
		return "local"
	case PrecedenceSetUp:
		return "set-up"
	case PrecedenceOuter:
		return "outer"
	case PrecedenceRoot:
		return "root"
	default:
		return "unknown"
	}
}

// sequence hands out declaration order numbers across every Context.
var sequence atomic.Uint64

// Context wraps a Hook with the metadata that positions it: the depth of the
// suite it was declared in, its scope, its precedence, and its declaration
// sequence number.
type Context struct {
	hook       Hook
	depth      int
	scope      Scope
	precedence Precedence
	seq        uint64
}

// NewContext returns a Context for hook declared at depth. Each call takes
// the next declaration sequence number.
func NewContext(hook Hook, depth int, scope Scope, precedence Precedence) Context {
	return Context{
		hook:       hook,
		depth:      depth,
		scope:      scope,
		precedence: precedence,
		seq:        sequence.Add(1),
	}
}

// Hook returns the wrapped hook.
func (c Context) Hook() Hook { return c.hook }

// Depth returns the nesting depth of the declaring suite (root is 0).
func (c Context) Depth() int { return c.depth }

// Scope returns where the hook applies.
func (c Context) Scope() Scope { return c.scope }

// Precedence returns the hook's precedence tier.
func (c Context) Precedence() Precedence { return c.precedence }

// Compare orders a before b when a should nest outside b: higher precedence
// first, then shallower declaration, then earlier declaration. It returns 0
// only when a and b are the same Context.
func Compare(a, b Context) int {
	if c := cmp.Compare(b.precedence, a.precedence); c != 0 {
		return c
	}
	if c := cmp.Compare(a.depth, b.depth); c != 0 {
		return c
	}
	return cmp.Compare(a.seq, b.seq)
}
