package tree

import (
	"context"

	"github.com/AbdelazizMoustafa10m/spectrum/internal/blockconfig"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/hooks"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/report"
)

// Node is a Spec or a Suite.
type Node interface {
	// Description returns the node's reporting identity.
	Description() report.Description
	// Configuration returns the node's merged block configuration.
	Configuration() blockconfig.Configuration
	// Ignore marks the node ignored. It cannot be undone.
	Ignore(reason string)
	// IsIgnored reports whether the node was explicitly ignored.
	IsIgnored() bool
	// IgnoreReason returns why the node was ignored, if known.
	IgnoreReason() string
	// Focus registers the node as focused with its parent chain. It is a
	// no-op on an ignored node.
	Focus()
	// IsAtomic reports whether the node runs as one unit under each-leaf
	// hooks: specs and composite suites.
	IsAtomic() bool
	// TestCount returns the number of specs at or below the node.
	TestCount() int
	// IsEffectivelyIgnored reports whether running the node would run no
	// spec at all.
	IsEffectivelyIgnored() bool
	// Tree returns the identity structure rooted at the node.
	Tree() report.Tree

	// run executes the node as a child of its parent. eachLeaf holds the
	// each-leaf hooks accumulated from the ancestors and thisLevel the
	// parent's this-level hooks.
	run(ctx context.Context, x *execution, eachLeaf, thisLevel hooks.Hooks)
	// reportIgnored reports every spec at or below the node as ignored.
	reportIgnored(x *execution)
}

// timeoutHooks returns the runner-installed timeout wrapper for an atomic
// node configured with a time limit.
func timeoutHooks(cfg blockconfig.Configuration, depth int) hooks.Hooks {
	limit, ok := cfg.Timeout()
	if !ok {
		return nil
	}
	return hooks.Hooks{hooks.NewContext(hooks.Timeout(limit), depth, hooks.ScopeThisLevel, hooks.PrecedenceRoot)}
}
