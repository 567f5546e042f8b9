package acquire

import (
	"context"
	"time"

	"github.com/fwojciec/manfetch"
)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

const (
	// DefaultAttempts is the number of fetches per URL.
	DefaultAttempts = 3

	// DefaultBaseDelay is the wait before the first retry; it doubles after
	// each further failure.
	DefaultBaseDelay = time.Second
)

// BackoffDelays returns the waits between attempts: base*2^(n-1) before
// attempt n+1. There is no wait after the final attempt.
func BackoffDelays(attempts int, base time.Duration) []time.Duration {
	if attempts < 2 {
		return nil
	}
	delays := make([]time.Duration, attempts-1)
	for i := range delays {
		delays[i] = base << i
	}
	return delays
}

// DefaultRetryDelays returns the backoff delays for DefaultAttempts: 1s, 2s.
func DefaultRetryDelays() []time.Duration {
	return BackoffDelays(DefaultAttempts, DefaultBaseDelay)
}

// Sleep waits for d, returning early with the context's error if it is
// cancelled.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// withRetry calls fn up to len(delays)+1 times. It stops at the first
// success, the first error that is not transient, or cancellation. It
// returns the number of calls made.
func withRetry[T any](ctx context.Context, url string, fn func(ctx context.Context) (T, error), delays []time.Duration, sleep SleepFunc, logger LogFunc) (T, int, error) {
	var zero T
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, attempt + 1, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return zero, attempt + 1, ctx.Err()
		}
		if !manfetch.IsTransientError(err) {
			return zero, attempt + 1, err
		}

		// Don't sleep after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger("retry %s (attempt %d) in %s: %v", url, attempt+2, delays[attempt], err)
		}

		if err := sleep(ctx, delays[attempt]); err != nil {
			return zero, attempt + 1, err
		}
	}

	return zero, maxAttempts, lastErr
}
