// Package retry provides a bounded exponential backoff loop shared by
// callers talking to flaky remote endpoints.
package retry

import (
	"context"
	"time"
)

// Do invokes fn until it succeeds, the attempt budget is exhausted or the
// context is cancelled. The delay between attempts doubles from baseDelay.
func Do(ctx context.Context, maxRetries int, baseDelay time.Duration, fn func(context.Context) error) error {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay <= 0 {
		baseDelay = 100 * time.Millisecond
	}

	delay := baseDelay
	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if attempt >= maxRetries {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
	}
}
