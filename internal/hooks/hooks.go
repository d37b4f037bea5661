// Package hooks models behavior wrapped around the execution of a block:
// before/after/around hooks, the metadata that decides where and in which
// order they apply, and the composition that folds an ordered set of hooks
// into a single chain.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/AbdelazizMoustafa10m/spectrum/internal/report"
)

// ErrBlockNotRun is reported when a composed hook chain completed without
// error but the innermost block was never invoked.
var ErrBlockNotRun = errors.New("at least one hook did not run the test block")

// Block is an executable unit: a spec body, a hook body, or the remainder of
// a hook chain.
type Block func(ctx context.Context) error

// Hook wraps an inner block. d identifies the node being wrapped and rep is
// the sink failures should be reported to. A hook must call block exactly
// once unless it returns an error first.
type Hook func(ctx context.Context, d report.Description, rep report.Reporter, block Block) error

// PanicError carries a value recovered from a panicking block.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Safe returns a Block that runs b and converts a panic into a *PanicError.
func Safe(b Block) Block {
	return func(ctx context.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &PanicError{Value: r, Stack: debug.Stack()}
			}
		}()
		return b(ctx)
	}
}

// Before returns a Hook that runs fn and, if it succeeds, the inner block.
func Before(fn Block) Hook {
	return func(ctx context.Context, _ report.Description, _ report.Reporter, block Block) error {
		if err := Safe(fn)(ctx); err != nil {
			return err
		}
		return block(ctx)
	}
}

// After returns a Hook that runs the inner block and then fn, whether or not
// the block failed. When both fail, fn's error is reported separately and the
// block's error is returned so the original cause keeps its identity.
func After(fn Block) Hook {
	return func(ctx context.Context, d report.Description, rep report.Reporter, block Block) error {
		err := block(ctx)
		afterErr := Safe(fn)(ctx)
		if afterErr == nil {
			return err
		}
		if err == nil {
			return afterErr
		}
		report.Error(rep, d, afterErr)
		return err
	}
}

// Around returns a Hook that hands the inner block to fn.
func Around(fn func(ctx context.Context, block Block) error) Hook {
	return func(ctx context.Context, _ report.Description, _ report.Reporter, block Block) error {
		return fn(ctx, block)
	}
}
