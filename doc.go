// Package spectrum is a behavior-driven test declaration and execution
// engine for Go's testing package.
//
// A test function declares a tree of nested suites and specs with closures
// and hands it to Run, which builds the tree once, executes it, and replays
// the outcome as subtests:
//
//	func TestCalculator(t *testing.T) {
//		spectrum.Run(t, "Calculator", func(s *spectrum.DSL) {
//			calc := spectrum.Let(s, func() *Calculator { return New() })
//
//			s.Describe("Add", func() {
//				s.BeforeEach(func(t *spectrum.T) { calc.Get().Reset() })
//
//				s.It("adds two numbers", func(t *spectrum.T) {
//					assert.Equal(t, 3, calc.Get().Add(1, 2))
//				})
//				s.XIt("handles overflow", func(t *spectrum.T) {})
//			})
//		})
//	}
//
// The *DSL handle is the declaration context: every call on it attaches to
// the suite whose closure is currently executing. Declaration calls made
// while a spec runs fail that spec.
//
// Hooks nest by precedence. From the outside in: timeouts, AroundAll,
// BeforeAll, then BeforeEach/AroundEach/Let and their relatives, then
// AfterEach, then AfterAll. Within a tier, hooks declared in an outer suite
// wrap hooks declared in an inner one, and earlier declarations wrap later
// ones.
//
// Selection happens while the tree is declared. Tags excluded by the
// configuration ignore a node outright; when include tags are configured,
// specs lacking all of them are ignored. Otherwise a focused node (FIt,
// FDescribe, With(Focus())) restricts its siblings, and its ancestors'
// siblings, to focused nodes only.
//
// Configuration is read from spectrum.toml (found by walking up from the
// working directory), then SPECTRUM_* environment variables, then Options.
package spectrum
