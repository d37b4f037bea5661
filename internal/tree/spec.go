package tree

import (
	"context"

	"github.com/AbdelazizMoustafa10m/spectrum/internal/blockconfig"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/hooks"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/report"
)

// Spec is a leaf test case.
type Spec struct {
	desc    report.Description
	parent  *Suite
	block   hooks.Block
	config  blockconfig.Configuration
	ignored bool
	reason  string
}

var _ Node = (*Spec)(nil)

func (s *Spec) Description() report.Description          { return s.desc }
func (s *Spec) Configuration() blockconfig.Configuration { return s.config }
func (s *Spec) IsIgnored() bool                          { return s.ignored }
func (s *Spec) IgnoreReason() string                     { return s.reason }
func (s *Spec) IsAtomic() bool                           { return true }
func (s *Spec) TestCount() int                           { return 1 }
func (s *Spec) IsEffectivelyIgnored() bool               { return s.ignored }
func (s *Spec) Tree() report.Tree                        { return report.Tree{Description: s.desc} }

// Parent returns the suite the spec belongs to.
func (s *Spec) Parent() *Suite { return s.parent }

func (s *Spec) Ignore(reason string) {
	if s.ignored {
		return
	}
	s.ignored = true
	s.reason = reason
}

func (s *Spec) Focus() {
	if s.ignored || s.parent == nil {
		return
	}
	s.parent.focusChild(s)
}

func (s *Spec) run(ctx context.Context, x *execution, eachLeaf, thisLevel hooks.Hooks) {
	x.rep.Started(s.desc)
	x.debug("spec started", "spec", s.desc.ID())

	ctx = report.NewContext(ctx, s.desc)
	chain := eachLeaf.Plus(thisLevel, timeoutHooks(s.config, len(s.desc.Path)))
	if err := chain.RunAround(ctx, s.desc, x.rep, s.block); err != nil {
		x.debug("spec failed", "spec", s.desc.ID(), "error", err)
	}

	x.rep.Finished(s.desc)
}

func (s *Spec) reportIgnored(x *execution) {
	x.debug("spec ignored", "spec", s.desc.ID(), "reason", s.reason)
	x.rep.Ignored(s.desc)
}
