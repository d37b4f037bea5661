package tree

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/AbdelazizMoustafa10m/spectrum/internal/blockconfig"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/hooks"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/report"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/tagging"
)

var (
	// ErrSuiteSealed is returned when a child or hook is added to a suite
	// whose declaration has ended.
	ErrSuiteSealed = errors.New("suite is no longer accepting declarations")
	// ErrAlreadyRun is returned when a tree is run a second time.
	ErrAlreadyRun = errors.New("suite has already been run")
)

// State is a suite's lifecycle position.
type State int

const (
	StateDeclaring State = iota
	StateDeclared
	StateRunning
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateDeclaring:
		return "declaring"
	case StateDeclared:
		return "declared"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Suite is a container of specs and nested suites. A composite suite is an
// atomic suite whose children are the ordered steps of one logical test.
type Suite struct {
	desc     report.Description
	parent   *Suite
	depth    int
	children []Node
	hooks    hooks.Hooks
	criteria *tagging.Criteria
	config   blockconfig.Configuration
	names    *NameSanitizer
	focused  map[Node]struct{}
	strategy strategy
	atomic   bool
	ignored  bool
	reason   string
	state    State
}

var _ Node = (*Suite)(nil)

// NewRoot returns the root suite of a new tree. criteria is the run-wide tag
// selection and cfg the run-wide defaults (for example a timeout from
// spectrum.toml); both are inherited by every descendant.
func NewRoot(name string, criteria *tagging.Criteria, cfg blockconfig.Configuration) *Suite {
	root := &Suite{
		desc:     report.NewRoot(NewNameSanitizer().Sanitize(name)),
		criteria: criteria.Clone(),
		config:   cfg,
		names:    NewNameSanitizer(),
		focused:  make(map[Node]struct{}),
		strategy: runAll,
	}
	if root.criteria == nil {
		root.criteria = tagging.New(nil, nil)
	}
	cfg.ApplyTo(root, root.criteria)
	return root
}

func (s *Suite) Description() report.Description          { return s.desc }
func (s *Suite) Configuration() blockconfig.Configuration { return s.config }
func (s *Suite) IsIgnored() bool                          { return s.ignored }
func (s *Suite) IgnoreReason() string                     { return s.reason }
func (s *Suite) IsAtomic() bool                           { return s.atomic }

// Parent returns the enclosing suite, or nil for the root.
func (s *Suite) Parent() *Suite { return s.parent }

// Depth returns the nesting depth; the root is 0.
func (s *Suite) Depth() int { return s.depth }

// State returns the suite's lifecycle position.
func (s *Suite) State() State { return s.state }

// Children returns the suite's children in declaration order.
func (s *Suite) Children() []Node { return slices.Clone(s.children) }

// Hooks returns a copy of the hooks declared in the suite.
func (s *Suite) Hooks() hooks.Hooks { return slices.Clone(s.hooks) }

// Criteria returns the suite's own tag selection. Changes affect children
// added afterwards.
func (s *Suite) Criteria() *tagging.Criteria { return s.criteria }

// IsFocused reports whether n is in the suite's focus set.
func (s *Suite) IsFocused(n Node) bool {
	_, ok := s.focused[n]
	return ok
}

// Ignore marks the suite and everything below it ignored.
func (s *Suite) Ignore(reason string) {
	if !s.ignored {
		s.ignored = true
		s.reason = reason
	}
	for _, c := range s.children {
		c.Ignore(reason)
	}
}

func (s *Suite) Focus() {
	if s.ignored || s.parent == nil {
		return
	}
	s.parent.focusChild(s)
}

func (s *Suite) focusChild(n Node) {
	if s.ignored {
		return
	}
	s.focused[n] = struct{}{}
	s.Focus()
}

func (s *Suite) TestCount() int {
	n := 0
	for _, c := range s.children {
		n += c.TestCount()
	}
	return n
}

func (s *Suite) IsEffectivelyIgnored() bool {
	if s.ignored {
		return true
	}
	for _, c := range s.children {
		if !c.IsEffectivelyIgnored() {
			return false
		}
	}
	return true
}

func (s *Suite) Tree() report.Tree {
	t := report.Tree{Description: s.desc}
	for _, c := range s.children {
		t.Children = append(t.Children, c.Tree())
	}
	return t
}

// AddSuite declares a plain child suite configured by cfg.
func (s *Suite) AddSuite(name string, cfg blockconfig.Configuration) (*Suite, error) {
	return s.addSuite(name, cfg, false)
}

// AddComposite declares an atomic child suite whose children run as steps:
// after the first failing step the rest are ignored.
func (s *Suite) AddComposite(name string, cfg blockconfig.Configuration) (*Suite, error) {
	return s.addSuite(name, cfg, true)
}

func (s *Suite) addSuite(name string, cfg blockconfig.Configuration, composite bool) (*Suite, error) {
	if err := s.accepting(); err != nil {
		return nil, err
	}
	child := &Suite{
		desc:     s.desc.Child(s.names.Sanitize(name), report.KindSuite),
		parent:   s,
		depth:    s.depth + 1,
		criteria: s.criteria.Clone(),
		config:   s.config.ForChild().Merge(cfg),
		names:    NewNameSanitizer(),
		focused:  make(map[Node]struct{}),
		strategy: runAll,
		atomic:   composite,
		ignored:  s.ignored,
		reason:   s.reason,
	}
	if composite {
		child.strategy = abortOnFailure
	}
	s.children = append(s.children, child)
	child.config.ApplyTo(child, child.criteria)
	return child, nil
}

// AddSpec declares a leaf spec running block, configured by cfg.
func (s *Suite) AddSpec(name string, block hooks.Block, cfg blockconfig.Configuration) (*Spec, error) {
	if err := s.accepting(); err != nil {
		return nil, err
	}
	spec := &Spec{
		desc:    s.desc.Child(s.names.Sanitize(name), report.KindSpec),
		parent:  s,
		block:   block,
		config:  s.config.ForChild().Merge(cfg),
		ignored: s.ignored,
		reason:  s.reason,
	}
	s.children = append(s.children, spec)
	spec.config.ApplyTo(spec, s.criteria)
	return spec, nil
}

// AddHook declares a hook in the suite.
func (s *Suite) AddHook(c hooks.Context) error {
	if err := s.accepting(); err != nil {
		return err
	}
	s.hooks.Add(c)
	return nil
}

// Discard drops every child and hook declared so far. Names already handed
// out stay reserved.
func (s *Suite) Discard() {
	s.children = nil
	s.hooks.Clear()
	clear(s.focused)
}

// Seal ends the suite's declaration phase.
func (s *Suite) Seal() {
	if s.state == StateDeclaring {
		s.state = StateDeclared
	}
}

func (s *Suite) accepting() error {
	if s.state != StateDeclaring {
		return fmt.Errorf("%s (%s): %w", s.desc.ID(), s.state, ErrSuiteSealed)
	}
	return nil
}

// RunOption configures a Run.
type RunOption func(*execution)

// WithLogger sets the logger that receives debug traces of the run.
func WithLogger(l *log.Logger) RunOption {
	return func(x *execution) {
		x.logger = l
	}
}

// Run executes the tree rooted at s, reporting every node to rep through a
// deduplicating filter. A tree runs at most once.
func (s *Suite) Run(ctx context.Context, rep report.Reporter, opts ...RunOption) error {
	if s.state == StateRunning || s.state == StateFinished {
		return ErrAlreadyRun
	}
	x := &execution{rep: report.Dedup(rep)}
	for _, opt := range opts {
		opt(x)
	}
	s.sealAll()

	x.debug("run started", "suite", s.desc.ID(), "tests", s.TestCount())
	s.runBody(ctx, x, nil)
	x.debug("run finished", "suite", s.desc.ID())
	return nil
}

func (s *Suite) sealAll() {
	s.Seal()
	for _, c := range s.children {
		if cs, ok := c.(*Suite); ok {
			cs.sealAll()
		}
	}
}

// run executes the suite as a child of its parent.
func (s *Suite) run(ctx context.Context, x *execution, eachLeaf, thisLevel hooks.Hooks) {
	if !s.atomic {
		_ = thisLevel.RunAround(ctx, s.desc, x.rep, func(ctx context.Context) error {
			s.runBody(ctx, x, eachLeaf)
			return nil
		})
		return
	}

	x.rep.Started(s.desc)
	x.debug("composite started", "suite", s.desc.ID())
	ctx = report.NewContext(ctx, s.desc)
	chain := eachLeaf.Plus(thisLevel, timeoutHooks(s.config, s.depth))
	err := chain.RunAround(ctx, s.desc, x.rep, func(ctx context.Context) error {
		// The composite is one test: its first failing step fails it too.
		obs := &failureObserver{Reporter: hooks.Reporter(ctx, x.rep)}
		s.runBody(ctx, x.with(obs), nil)
		return obs.firstFailure()
	})
	if err != nil {
		x.debug("composite failed", "suite", s.desc.ID(), "error", err)
	}
	x.rep.Finished(s.desc)
}

// runBody runs the suite's once hooks around its children. inherited holds
// the each-leaf hooks of the ancestors that still apply to the children.
func (s *Suite) runBody(ctx context.Context, x *execution, inherited hooks.Hooks) {
	s.state = StateRunning
	defer func() { s.state = StateFinished }()

	if s.IsEffectivelyIgnored() {
		s.reportIgnored(x)
		return
	}

	eachLeaf := inherited.Plus(s.hooks.EachLeaf())
	ctx = report.NewContext(ctx, s.desc)
	_ = s.hooks.Once().RunAround(ctx, s.desc, x.rep, func(ctx context.Context) error {
		s.strategy(ctx, s, x, eachLeaf)
		return nil
	})
}

// runChild runs one child, or reports it ignored when it is out of focus.
func (s *Suite) runChild(ctx context.Context, x *execution, c Node, eachLeaf hooks.Hooks) {
	if c.IsEffectivelyIgnored() {
		c.reportIgnored(x)
		return
	}
	if len(s.focused) > 0 && !s.IsFocused(c) {
		x.debug("not focused", "node", c.Description().ID())
		c.reportIgnored(x)
		return
	}
	c.run(ctx, x, eachLeaf, s.hooks.ThisLevel())
}

func (s *Suite) reportIgnored(x *execution) {
	if s.TestCount() == 0 {
		x.debug("suite ignored", "suite", s.desc.ID(), "reason", s.reason)
		x.rep.Ignored(s.desc)
	}
	for _, c := range s.children {
		c.reportIgnored(x)
	}
}

// ordered returns the children in execution order: a seeded permutation
// when the configuration carries a random seed, declaration order otherwise.
func (s *Suite) ordered() []Node {
	seed, ok := s.config.RandomSeed()
	if !ok {
		return s.children
	}
	out := slices.Clone(s.children)
	r := rand.New(rand.NewPCG(seed, uint64(s.depth)))
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
