package hooks

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/AbdelazizMoustafa10m/spectrum/internal/report"
)

// Hooks is an ordered collection of hook Contexts. The filtering methods
// return new collections and never modify the receiver.
type Hooks []Context

// Add appends c to the collection.
func (h *Hooks) Add(c Context) {
	*h = append(*h, c)
}

// Clear removes every hook from the collection.
func (h *Hooks) Clear() {
	*h = nil
}

func (h Hooks) filter(keep func(Context) bool) Hooks {
	var out Hooks
	for _, c := range h {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// Once returns the hooks scoped to run once at the declaring level.
func (h Hooks) Once() Hooks {
	return h.filter(func(c Context) bool { return c.scope == ScopeOnce })
}

// EachLeaf returns the hooks that wrap every atomic descendant.
func (h Hooks) EachLeaf() Hooks {
	return h.filter(func(c Context) bool { return c.scope == ScopeEachLeaf })
}

// ThisLevel returns the hooks that wrap each direct child.
func (h Hooks) ThisLevel() Hooks {
	return h.filter(func(c Context) bool { return c.scope == ScopeThisLevel })
}

// Plus returns a new collection holding h followed by every element of
// others.
func (h Hooks) Plus(others ...Hooks) Hooks {
	n := len(h)
	for _, o := range others {
		n += len(o)
	}
	out := make(Hooks, 0, n)
	out = append(out, h...)
	for _, o := range others {
		out = append(out, o...)
	}
	return out
}

// Sorted returns a copy ordered outermost first (see Compare).
func (h Hooks) Sorted() Hooks {
	out := slices.Clone(h)
	slices.SortFunc(out, Compare)
	return out
}

// RunAround composes the hooks, outermost first, around block and runs the
// chain. Every layer reports an error escaping its inner block to rep before
// passing it outward; rep is expected to deduplicate (see report.Dedup). If
// the chain completes without error but block never ran, ErrBlockNotRun is
// reported against d. The final error of the chain is returned after it has
// been reported.
func (h Hooks) RunAround(ctx context.Context, d report.Description, rep report.Reporter, block Block) error {
	sorted := h.Sorted()

	var ran atomic.Bool
	chain := Block(func(ctx context.Context) error {
		ran.Store(true)
		return block(ctx)
	})
	for i := len(sorted) - 1; i >= 0; i-- {
		chain = wrap(sorted[i].hook, d, rep, chain)
	}

	err := Safe(chain)(ctx)
	if err == nil && !ran.Load() {
		err = ErrBlockNotRun
	}
	report.Error(Reporter(ctx, rep), d, err)
	return err
}

// wrap builds one layer of the chain: hook receives a version of inner that
// recovers panics and reports failures before returning them. Both report
// through Reporter(ctx, rep) so a layer inside an abandoned timeout stays
// silent.
func wrap(hook Hook, d report.Description, rep report.Reporter, inner Block) Block {
	return func(ctx context.Context) error {
		r := Reporter(ctx, rep)
		return hook(ctx, d, r, func(ctx context.Context) error {
			err := Safe(inner)(ctx)
			report.Error(r, d, err)
			return err
		})
	}
}

// Idempotent returns a Hook that runs setup at most once, however many
// executions it wraps and from however many goroutines. Later executions
// replay the first outcome: after a success the inner block runs directly;
// after a failure the same error is returned without running the block.
func Idempotent(setup Block) Hook {
	var (
		once sync.Once
		err  error
	)
	return func(ctx context.Context, _ report.Description, _ report.Reporter, block Block) error {
		once.Do(func() { err = Safe(setup)(ctx) })
		if err != nil {
			return err
		}
		return block(ctx)
	}
}
