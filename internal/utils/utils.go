// Package utils holds small context-aware helpers shared across clients.
package utils

import (
	"context"
	"time"
)

// WaitFor sleeps for the given duration unless the context ends first, in
// which case the context error is returned. Non-positive durations return
// immediately. Used for retry backoff between upstream API attempts.
func WaitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
