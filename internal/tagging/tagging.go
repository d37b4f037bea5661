// Package tagging decides whether a tagged node may run under the active
// include/exclude tag selection.
package tagging

import (
	"slices"
	"strings"
)

// Criteria holds the active tag selection. The zero value allows every node.
//
// A suite owns its own Criteria cloned from its parent, so changes made while
// declaring one suite affect only that suite and the children declared after
// the change.
type Criteria struct {
	included map[string]struct{}
	excluded map[string]struct{}
}

// New returns Criteria with the given include and exclude lists.
func New(include, exclude []string) *Criteria {
	c := &Criteria{}
	c.Include(include...)
	c.Exclude(exclude...)
	return c
}

// Include adds tags to the required set. Blank tags are ignored.
func (c *Criteria) Include(tags ...string) {
	c.included = addAll(c.included, tags)
}

// Exclude adds tags to the excluded set. Blank tags are ignored.
func (c *Criteria) Exclude(tags ...string) {
	c.excluded = addAll(c.excluded, tags)
}

// Clone returns an independent copy of c.
func (c *Criteria) Clone() *Criteria {
	if c == nil {
		return &Criteria{}
	}
	return &Criteria{
		included: cloneSet(c.included),
		excluded: cloneSet(c.excluded),
	}
}

// Included returns the required tags, sorted.
func (c *Criteria) Included() []string {
	if c == nil {
		return nil
	}
	return sortedKeys(c.included)
}

// Excluded returns the excluded tags, sorted.
func (c *Criteria) Excluded() []string {
	if c == nil {
		return nil
	}
	return sortedKeys(c.excluded)
}

// IsExcluded reports whether any of tags is in the excluded set.
func (c *Criteria) IsExcluded(tags []string) bool {
	if c == nil {
		return false
	}
	for _, t := range tags {
		if _, ok := c.excluded[t]; ok {
			return true
		}
	}
	return false
}

// CompliesWithRequired reports whether tags satisfy the include set: true
// when no tags are required or when tags contain at least one of them.
func (c *Criteria) CompliesWithRequired(tags []string) bool {
	if c == nil || len(c.included) == 0 {
		return true
	}
	for _, t := range tags {
		if _, ok := c.included[t]; ok {
			return true
		}
	}
	return false
}

// IsAllowedToRun reports whether a node carrying tags passes the selection:
// it is not excluded, and it either carries a required tag or nothing is
// required.
func (c *Criteria) IsAllowedToRun(tags []string) bool {
	return !c.IsExcluded(tags) && c.CompliesWithRequired(tags)
}

// ParseList splits a comma-separated tag list, trimming whitespace and
// dropping empty entries. "fast, db,,slow " yields [fast db slow].
func ParseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func addAll(set map[string]struct{}, tags []string) map[string]struct{} {
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if set == nil {
			set = make(map[string]struct{})
		}
		set[t] = struct{}{}
	}
	return set
}

func cloneSet(set map[string]struct{}) map[string]struct{} {
	if set == nil {
		return nil
	}
	out := make(map[string]struct{}, len(set))
	for k := range set {
		out[k] = struct{}{}
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
