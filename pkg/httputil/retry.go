package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks an error as transient. [Client.FetchDeck] wraps
// network failures, 5xx responses, and 429 responses with this type so
// that [Retry] attempts the fetch again; anything else fails fast.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry executes fn up to attempts times, doubling delay after each
// failed attempt. Only errors wrapped in [RetryableError] are retried;
// other errors return immediately. Returns the last error if every
// attempt fails, or ctx.Err() when the context is cancelled during a
// backoff wait.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !isRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// RetryWithBackoff runs [Retry] with the default policy: 3 attempts
// starting from a 1 second delay.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}

func isRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}
