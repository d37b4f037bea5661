package spectrum

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/AbdelazizMoustafa10m/spectrum/internal/expect"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/hooks"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/report"
)

// ErrorIs expects an error matching target via errors.Is.
func ErrorIs(target error) Expectation { return expect.ErrorIs(target) }

// ErrorAs expects an error assignable to E via errors.As.
func ErrorAs[E error]() Expectation { return expect.ErrorAs[E]() }

// AnyError expects any error. Narrow it with WithMessage.
func AnyError() Expectation { return expect.Any() }

// ItExpecting declares a spec that passes only when its body ends with an
// error matching exp: a returned panic, a Fatal, or a recorded failure. A
// matching error is swallowed. A body that passes, or fails differently,
// fails with a message describing the mismatch. Skipped bodies stay
// skipped.
func (s *DSL) ItExpecting(name string, exp Expectation, fn func(*T)) {
	s.spec(name, plain, expecting(s.logger, exp, fn))
}

func expecting(logger *log.Logger, exp Expectation, fn func(*T)) hooks.Block {
	run := body(logger, fn)
	return func(ctx context.Context) error {
		err := run(ctx)
		if report.IsAssumption(err) {
			return err
		}
		return exp.Check(err)
	}
}
