// Package clock provides helpers for time-related operations.
package clock

import (
	"context"
	"time"
)

// Wait blocks until d elapses, a value arrives on signal, or ctx is done.
// A nil signal never fires, so Wait then behaves as a context-aware sleep.
func Wait(ctx context.Context, signal <-chan struct{}, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-signal:
		return nil
	case <-timer.C:
		return nil
	}
}
