package health

import (
	"context"
	"time"
)

// Retry invokes fn up to attempts times, sleeping interval between failed
// attempts. A nil return from fn terminates immediately without a further
// sleep; the error of the last attempt is returned when the budget is
// exhausted. Context cancellation aborts between attempts and returns the
// context's error.
func Retry(ctx context.Context, attempts int, interval time.Duration, fn func(context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		if attempt == attempts {
			break
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}
