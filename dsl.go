package spectrum

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/AbdelazizMoustafa10m/spectrum/internal/blockconfig"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/declare"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/hooks"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/tree"
)

// ErrNotDeclaring is the panic value of a declaration call made while no
// declaration closure is running, for example from inside a spec body.
var ErrNotDeclaring = errors.New("spectrum: declaration outside of a declaration block")

// pendingReason is the ignore reason of specs declared without a body.
const pendingReason = "pending"

// DSL is the declaration context handed to the closure passed to Run or
// Build. Its methods attach suites, specs, and hooks to the suite whose
// closure is currently executing. A DSL belongs to one tree and must not be
// shared between goroutines while declaring.
type DSL struct {
	stack  *declare.Stack
	logger *log.Logger
}

func (s *DSL) current() *tree.Suite {
	suite := s.stack.Current()
	if suite == nil {
		panic(ErrNotDeclaring)
	}
	return suite
}

func (s *DSL) suite(name string, cfg blockconfig.Configuration, composite bool, fn func()) {
	parent := s.current()
	add := parent.AddSuite
	if composite {
		add = parent.AddComposite
	}
	child, err := add(name, cfg)
	if err != nil {
		panic(err)
	}
	if fn == nil {
		fn = func() {}
	}
	s.stack.Declare(child, fn)
}

func (s *DSL) spec(name string, cfg blockconfig.Configuration, block hooks.Block) {
	if _, err := s.current().AddSpec(name, block, cfg); err != nil {
		panic(err)
	}
}

func (s *DSL) hook(h hooks.Hook, scope hooks.Scope, precedence hooks.Precedence) {
	suite := s.current()
	if err := suite.AddHook(hooks.NewContext(h, suite.Depth(), scope, precedence)); err != nil {
		panic(err)
	}
}

var (
	plain   = blockconfig.Of()
	focused = blockconfig.Of(blockconfig.Focus())
	ignored = blockconfig.Of(blockconfig.Ignore(""))
)

// Describe declares a suite. fn runs immediately to declare its children.
func (s *DSL) Describe(name string, fn func()) { s.suite(name, plain, false, fn) }

// Context is an alias for Describe.
func (s *DSL) Context(name string, fn func()) { s.suite(name, plain, false, fn) }

// FDescribe declares a focused suite.
func (s *DSL) FDescribe(name string, fn func()) { s.suite(name, focused, false, fn) }

// FContext is an alias for FDescribe.
func (s *DSL) FContext(name string, fn func()) { s.suite(name, focused, false, fn) }

// XDescribe declares an ignored suite. Its children are declared and
// reported ignored.
func (s *DSL) XDescribe(name string, fn func()) { s.suite(name, ignored, false, fn) }

// XContext is an alias for XDescribe.
func (s *DSL) XContext(name string, fn func()) { s.suite(name, ignored, false, fn) }

// Composite declares an atomic suite whose children are the ordered steps
// of one test: once a step fails, the remaining steps are reported ignored.
// Per-spec hooks declared outside the composite wrap it as a whole.
func (s *DSL) Composite(name string, fn func()) { s.suite(name, plain, true, fn) }

// FComposite declares a focused composite suite.
func (s *DSL) FComposite(name string, fn func()) { s.suite(name, focused, true, fn) }

// XComposite declares an ignored composite suite.
func (s *DSL) XComposite(name string, fn func()) { s.suite(name, ignored, true, fn) }

// It declares a spec.
func (s *DSL) It(name string, fn func(*T)) { s.spec(name, plain, body(s.logger, fn)) }

// FIt declares a focused spec.
func (s *DSL) FIt(name string, fn func(*T)) { s.spec(name, focused, body(s.logger, fn)) }

// XIt declares an ignored spec.
func (s *DSL) XIt(name string, fn func(*T)) { s.spec(name, ignored, body(s.logger, fn)) }

// Pending declares a spec without a body. It is reported ignored.
func (s *DSL) Pending(name string) {
	s.spec(name, blockconfig.Of(blockconfig.Ignore(pendingReason)), body(s.logger, nil))
}

// BeforeEach runs fn before every spec in the current suite and its
// descendants.
func (s *DSL) BeforeEach(fn func(*T)) {
	s.hook(hooks.Before(body(s.logger, fn)), hooks.ScopeEachLeaf, hooks.PrecedenceLocal)
}

// AfterEach runs fn after every spec in the current suite and its
// descendants, whether or not the spec passed.
func (s *DSL) AfterEach(fn func(*T)) {
	s.hook(hooks.After(body(s.logger, fn)), hooks.ScopeEachLeaf, hooks.PrecedenceCleanUpLocal)
}

// AroundEach wraps every spec in the current suite and its descendants.
// fn must call run exactly once.
func (s *DSL) AroundEach(fn func(ctx context.Context, run Block) error) {
	s.hook(hooks.Around(fn), hooks.ScopeEachLeaf, hooks.PrecedenceLocal)
}

// BeforeAll runs fn once, before the first spec of the current suite that
// is not ignored. When fn fails, every spec of the suite fails with the
// same error.
func (s *DSL) BeforeAll(fn func(*T)) {
	s.hook(hooks.Idempotent(body(s.logger, fn)), hooks.ScopeEachLeaf, hooks.PrecedenceSetUp)
}

// AfterAll runs fn once, after every child of the current suite has run.
// Its failure is reported against the suite.
func (s *DSL) AfterAll(fn func(*T)) {
	s.hook(hooks.After(body(s.logger, fn)), hooks.ScopeOnce, hooks.PrecedenceCleanUpGlobal)
}

// AroundAll wraps the execution of the current suite's children as a
// whole. fn must call run exactly once.
func (s *DSL) AroundAll(fn func(ctx context.Context, run Block) error) {
	s.hook(hooks.Around(fn), hooks.ScopeOnce, hooks.PrecedenceOuter)
}

// RequireTags restricts the specs declared after this call in the current
// suite, and in suites declared after it, to those carrying at least one of
// tags.
func (s *DSL) RequireTags(tags ...string) {
	s.current().Criteria().Include(tags...)
}

// ExcludeTags ignores nodes declared after this call in the current suite,
// and in suites declared after it, that carry any of tags.
func (s *DSL) ExcludeTags(tags ...string) {
	s.current().Criteria().Exclude(tags...)
}
