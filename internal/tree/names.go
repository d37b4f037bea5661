package tree

import (
	"fmt"
	"strings"
)

// unnamed replaces an empty name.
const unnamed = "unnamed"

var unsafeNameChars = strings.NewReplacer(
	"/", "-",
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
	"\t", " ",
)

// NameSanitizer produces unique, report-safe child names for one suite. It
// replaces characters that would break the hierarchical ID format and
// appends _1, _2, ... to repeated names. Every name it has produced stays
// reserved for the life of the sanitizer.
type NameSanitizer struct {
	used map[string]struct{}
}

// NewNameSanitizer returns an empty NameSanitizer.
func NewNameSanitizer() *NameSanitizer {
	return &NameSanitizer{used: make(map[string]struct{})}
}

// Sanitize returns the unique safe form of name and reserves it.
func (n *NameSanitizer) Sanitize(name string) string {
	clean := unsafeNameChars.Replace(name)
	if strings.TrimSpace(clean) == "" {
		clean = unnamed
	}
	candidate := clean
	for i := 1; n.taken(candidate); i++ {
		candidate = fmt.Sprintf("%s_%d", clean, i)
	}
	n.used[candidate] = struct{}{}
	return candidate
}

func (n *NameSanitizer) taken(name string) bool {
	_, ok := n.used[name]
	return ok
}
