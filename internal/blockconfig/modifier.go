// Package blockconfig holds the declarative modifiers attached to a
// declaration block (ignore, focus, tags, timeout, random order), how they
// combine, which of them flow from a suite to its children, and how a
// resolved configuration decides a node's fate.
package blockconfig

import (
	"slices"
	"time"
)

// Kind enumerates the closed set of modifier kinds.
type Kind int

const (
	// KindIgnore marks a block ignored.
	KindIgnore Kind = iota
	// KindFocus marks a block focused.
	KindFocus
	// KindTags attaches tags to a block.
	KindTags
	// KindTimeout bounds the execution time of atomic nodes.
	KindTimeout
	// KindRandomOrder shuffles a suite's children.
	KindRandomOrder
)

func (k Kind) String() string {
	switch k {
	case KindIgnore:
		return "ignore"
	case KindFocus:
		return "focus"
	case KindTags:
		return "tags"
	case KindTimeout:
		return "timeout"
	case KindRandomOrder:
		return "random-order"
	default:
		return "unknown"
	}
}

// inheritable reports whether modifiers of kind k flow from a suite to the
// children declared inside it. Focus applies only where it is declared.
func (k Kind) inheritable() bool {
	return k != KindFocus
}

// Modifier is one declarative modifier. Only the fields belonging to its
// Kind are meaningful.
type Modifier struct {
	kind    Kind
	reason  string
	tags    []string
	timeout time.Duration
	seed    uint64
}

// Ignore returns a modifier marking a block ignored. An optional reason is
// kept for reporting.
func Ignore(reason string) Modifier {
	return Modifier{kind: KindIgnore, reason: reason}
}

// Focus returns a modifier marking a block focused.
func Focus() Modifier {
	return Modifier{kind: KindFocus}
}

// Tags returns a modifier attaching tags to a block.
func Tags(tags ...string) Modifier {
	return Modifier{kind: KindTags, tags: uniq(nil, tags)}
}

// Timeout returns a modifier bounding each atomic node's execution to d.
func Timeout(d time.Duration) Modifier {
	return Modifier{kind: KindTimeout, timeout: d}
}

// RandomOrder returns a modifier running a suite's children in a permutation
// derived from seed.
func RandomOrder(seed uint64) Modifier {
	return Modifier{kind: KindRandomOrder, seed: seed}
}

// Kind returns the modifier's kind.
func (m Modifier) Kind() Kind { return m.kind }

// merge combines an existing modifier with an incoming one of the same kind.
// Ignore and focus are monotonic ORs, tags are unioned, and for timeout and
// random order the incoming (more specific) value wins.
func merge(existing, incoming Modifier) Modifier {
	switch existing.kind {
	case KindIgnore:
		if existing.reason == "" {
			existing.reason = incoming.reason
		}
		return existing
	case KindFocus:
		return existing
	case KindTags:
		return Modifier{kind: KindTags, tags: uniq(existing.tags, incoming.tags)}
	case KindTimeout, KindRandomOrder:
		return incoming
	default:
		return incoming
	}
}

// uniq appends the elements of add not already present in base, preserving
// first-seen order. Blank tags are dropped.
func uniq(base, add []string) []string {
	out := slices.Clone(base)
	for _, t := range add {
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}
