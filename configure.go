package spectrum

import (
	"strings"
	"time"

	"github.com/AbdelazizMoustafa10m/spectrum/internal/blockconfig"
)

// Ignore marks a block ignored. The reason parts are joined with spaces.
func Ignore(reason ...string) Modifier {
	return blockconfig.Ignore(strings.Join(reason, " "))
}

// Focus marks a block focused. Focus is not inherited by children.
func Focus() Modifier { return blockconfig.Focus() }

// Tags labels a block for tag selection. Children inherit their parents'
// tags.
func Tags(tags ...string) Modifier { return blockconfig.Tags(tags...) }

// Timeout limits every spec and composite in the block to d. The innermost
// declared timeout wins.
func Timeout(d time.Duration) Modifier { return blockconfig.Timeout(d) }

// RandomOrder runs the children of every suite in the block in a
// permutation derived from seed.
func RandomOrder(seed uint64) Modifier { return blockconfig.RandomOrder(seed) }

// Configured declares blocks carrying a fixed configuration. Obtain one
// with DSL.With.
type Configured struct {
	dsl    *DSL
	config blockconfig.Configuration
}

// With returns a declarer whose blocks carry mods.
//
//	s.With(spectrum.Tags("slow"), spectrum.Timeout(time.Second)).It("syncs", ...)
func (s *DSL) With(mods ...Modifier) *Configured {
	return &Configured{dsl: s, config: blockconfig.Of(mods...)}
}

// Describe declares a configured suite.
func (c *Configured) Describe(name string, fn func()) { c.dsl.suite(name, c.config, false, fn) }

// Context is an alias for Describe.
func (c *Configured) Context(name string, fn func()) { c.dsl.suite(name, c.config, false, fn) }

// Composite declares a configured composite suite.
func (c *Configured) Composite(name string, fn func()) { c.dsl.suite(name, c.config, true, fn) }

// It declares a configured spec.
func (c *Configured) It(name string, fn func(*T)) {
	c.dsl.spec(name, c.config, body(c.dsl.logger, fn))
}

// ItExpecting declares a configured spec that must end with an error
// matching exp.
func (c *Configured) ItExpecting(name string, exp Expectation, fn func(*T)) {
	c.dsl.spec(name, c.config, expecting(c.dsl.logger, exp, fn))
}
