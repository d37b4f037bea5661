package blockconfig

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/AbdelazizMoustafa10m/spectrum/internal/tagging"
)

// Configuration is a bag of modifiers keyed by kind. The zero value is an
// empty configuration. Configuration values are immutable: every method that
// changes content returns a new value.
type Configuration struct {
	mods map[Kind]Modifier
}

// Of returns a configuration holding mods, merged in order.
func Of(mods ...Modifier) Configuration {
	var c Configuration
	for _, m := range mods {
		c = c.With(m)
	}
	return c
}

// With returns c with m merged in.
func (c Configuration) With(m Modifier) Configuration {
	out := c.clone()
	if existing, ok := out.mods[m.kind]; ok {
		out.mods[m.kind] = merge(existing, m)
	} else {
		out.mods[m.kind] = m
	}
	return out
}

// Merge returns c with every modifier of other merged in. Modifiers from
// other count as the more specific source.
func (c Configuration) Merge(other Configuration) Configuration {
	out := c
	for _, k := range other.kinds() {
		out = out.With(other.mods[k])
	}
	return out
}

// ForChild returns the projection of c that children inherit: every
// inheritable kind, which excludes focus.
func (c Configuration) ForChild() Configuration {
	out := Configuration{mods: make(map[Kind]Modifier, len(c.mods))}
	for k, m := range c.mods {
		if k.inheritable() {
			out.mods[k] = m
		}
	}
	return out
}

// IsEmpty reports whether c holds no modifiers.
func (c Configuration) IsEmpty() bool { return len(c.mods) == 0 }

// Ignored reports whether c marks a block ignored, and why.
func (c Configuration) Ignored() (bool, string) {
	m, ok := c.mods[KindIgnore]
	return ok, m.reason
}

// Focused reports whether c marks a block focused.
func (c Configuration) Focused() bool {
	_, ok := c.mods[KindFocus]
	return ok
}

// Tags returns the block's tags in first-declared order.
func (c Configuration) Tags() []string {
	return slices.Clone(c.mods[KindTags].tags)
}

// Timeout returns the block's time limit when one is set.
func (c Configuration) Timeout() (time.Duration, bool) {
	m, ok := c.mods[KindTimeout]
	if !ok || m.timeout <= 0 {
		return 0, false
	}
	return m.timeout, true
}

// RandomSeed returns the seed for shuffling a suite's children when random
// order is set.
func (c Configuration) RandomSeed() (uint64, bool) {
	m, ok := c.mods[KindRandomOrder]
	return m.seed, ok
}

// String renders c for logs, kinds in a stable order.
func (c Configuration) String() string {
	parts := make([]string, 0, len(c.mods))
	for _, k := range c.kinds() {
		m := c.mods[k]
		switch k {
		case KindTags:
			parts = append(parts, fmt.Sprintf("tags=%s", strings.Join(m.tags, ",")))
		case KindTimeout:
			parts = append(parts, fmt.Sprintf("timeout=%s", m.timeout))
		case KindRandomOrder:
			parts = append(parts, fmt.Sprintf("seed=%d", m.seed))
		default:
			parts = append(parts, k.String())
		}
	}
	return "{" + strings.Join(parts, " ") + "}"
}

func (c Configuration) kinds() []Kind {
	ks := make([]Kind, 0, len(c.mods))
	for k := range c.mods {
		ks = append(ks, k)
	}
	slices.Sort(ks)
	return ks
}

func (c Configuration) clone() Configuration {
	out := Configuration{mods: make(map[Kind]Modifier, len(c.mods)+1)}
	for k, m := range c.mods {
		out.mods[k] = m
	}
	return out
}

// Target is the node a configuration is applied to.
type Target interface {
	Ignore(reason string)
	Focus()
	IsAtomic() bool
}

// ApplyTo decides t's fate under criteria, in strict order: tags, then
// focus, then ignore. Tags veto everything else: a node carrying an excluded
// tag is ignored even when focused, and an atomic node lacking every required
// tag is ignored. Otherwise a focused node requests focus from its parents,
// and an ignored one is ignored.
func (c Configuration) ApplyTo(t Target, criteria *tagging.Criteria) {
	tags := c.Tags()
	if criteria.IsExcluded(tags) {
		t.Ignore("excluded by tags")
		return
	}
	if t.IsAtomic() && !criteria.CompliesWithRequired(tags) {
		t.Ignore("missing required tags " + strings.Join(criteria.Included(), ","))
		return
	}
	if c.Focused() {
		t.Focus()
		return
	}
	if ignored, reason := c.Ignored(); ignored {
		t.Ignore(reason)
	}
}
