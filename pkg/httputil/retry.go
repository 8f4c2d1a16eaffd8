package httputil

import (
	"context"
	"errors"
	"time"
)

// Defaults for [RetryWithBackoff], tuned for the model API the assist
// client talks to: a short first pause covers connection blips, and the
// cap keeps a rate-limited planning request from stalling for long.
const (
	DefaultAttempts     = 3
	DefaultInitialDelay = 500 * time.Millisecond
	MaxDelay            = 4 * time.Second
)

// RetryableError marks an error as transient. Wrap network timeouts,
// 5xx responses and 429 rate limits with it so [Retry] tries again;
// every other error aborts the loop.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fn up to attempts times, sleeping delay between tries and
// doubling it after each failure, capped at [MaxDelay]. Only errors
// wrapped in [RetryableError] are retried. A cancelled context wins
// over the remaining attempts; its error is returned.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !errors.As(err, new(*RetryableError)) {
			return err
		}
		lastErr = err

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		if delay *= 2; delay > MaxDelay {
			delay = MaxDelay
		}
	}
	return lastErr
}

// RetryWithBackoff runs fn with the default attempt count and backoff.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, DefaultAttempts, DefaultInitialDelay, fn)
}
