package hooks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AbdelazizMoustafa10m/spectrum/internal/report"
)

// TimeoutError is returned when a block exceeds its time limit.
type TimeoutError struct {
	Limit time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s", e.Limit)
}

// Timeout returns a Hook that bounds the inner block to limit. The block runs
// on its own goroutine with a context cancelled at the deadline; when the
// deadline passes first the hook returns a *TimeoutError without waiting for
// the block to return. From then on the abandoned block reports nothing
// (see Reporter).
func Timeout(limit time.Duration) Hook {
	return func(ctx context.Context, _ report.Description, _ report.Reporter, block Block) error {
		ctx, cancel := context.WithTimeout(ctx, limit)
		defer cancel()
		ctx, g := withGate(ctx)

		done := make(chan error, 1)
		go func() { done <- Safe(block)(ctx) }()

		select {
		case err := <-done:
			return err
		case <-ctx.Done():
			// Prefer a result that raced the deadline.
			select {
			case err := <-done:
				return err
			default:
			}
			g.close()
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return &TimeoutError{Limit: limit}
			}
			return ctx.Err()
		}
	}
}
