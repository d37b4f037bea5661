// Package tree is the in-memory model of a declared test tree: leaf Specs,
// container Suites, and composite (atomic) suites whose children are the
// sequential steps of one logical test.
//
// A tree is built once by the declaration engine and consumed once by Run.
// Configuration and tag selection are resolved as each node is added, so
// by the time Run walks the tree every node already knows whether it is
// ignored and which of its siblings are focused.
//
// Execution order guarantees:
//
//   - children run in declaration order unless the suite's configuration
//     carries a random-order seed;
//   - a suite with focused children runs only those children and reports the
//     rest ignored;
//   - a composite suite stops running steps after the first failure and
//     reports the remaining steps ignored.
package tree
