package report

import "strings"

// IDSeparator joins the path segments of a Description into its ID.
const IDSeparator = "/"

// Kind distinguishes leaf specs from suites in a Description.
type Kind string

const (
	// KindSpec identifies a leaf test case.
	KindSpec Kind = "spec"
	// KindSuite identifies a container of specs and suites.
	KindSuite Kind = "suite"
)

// Description is the hierarchical identity of a node in a declared tree. Path
// holds the names of every enclosing suite from the root down; Name is the
// node's own, already sanitized, name.
type Description struct {
	Path []string `json:"path"`
	Name string   `json:"name"`
	Kind Kind     `json:"kind"`
}

// NewRoot returns the Description of a top-level suite.
func NewRoot(name string) Description {
	return Description{Name: name, Kind: KindSuite}
}

// Child returns the Description of a node named name nested directly below d.
// The returned value shares no memory with d.
func (d Description) Child(name string, kind Kind) Description {
	path := make([]string, 0, len(d.Path)+1)
	path = append(path, d.Path...)
	path = append(path, d.Name)
	return Description{Path: path, Name: name, Kind: kind}
}

// ID returns the unique textual identity of d, e.g. "Calculator/adds/works".
func (d Description) ID() string {
	if len(d.Path) == 0 {
		return d.Name
	}
	return strings.Join(d.Path, IDSeparator) + IDSeparator + d.Name
}

// IsSuite reports whether d describes a suite.
func (d Description) IsSuite() bool { return d.Kind == KindSuite }

// String implements fmt.Stringer.
func (d Description) String() string { return d.ID() }

// Tree is the identity structure of a declared tree, available before any
// spec runs.
type Tree struct {
	Description
	Children []Tree `json:"children,omitempty"`
}

// Leaves returns the descriptions of every spec below t in declaration order.
func (t Tree) Leaves() []Description {
	if t.Kind == KindSpec {
		return []Description{t.Description}
	}
	var leaves []Description
	for _, c := range t.Children {
		leaves = append(leaves, c.Leaves()...)
	}
	return leaves
}

// Find returns the subtree whose ID equals id.
func (t Tree) Find(id string) (Tree, bool) {
	if t.ID() == id {
		return t, true
	}
	for _, c := range t.Children {
		if found, ok := c.Find(id); ok {
			return found, true
		}
	}
	return Tree{}, false
}
