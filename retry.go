package docindex

import (
	"context"
	"time"
)

// DefaultRetryDelays returns the backoff delays between attempts of a
// remote operation: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// RetryFunc is called before each retry with the attempt about to be made
// (starting at 2) and the error of the previous attempt.
type RetryFunc func(attempt int, err error)

// Retry calls fn until it succeeds, returns a non-retryable error, or the
// delays are used up (len(delays)+1 attempts in total). Errors with code
// ENOTFOUND or EINVALID are not retried. Returns the last error.
func Retry(ctx context.Context, delays []time.Duration, onRetry RetryFunc, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt <= len(delays); attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if !retryable(err) || attempt == len(delays) {
			break
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if onRetry != nil {
			onRetry(attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
	return err
}

func retryable(err error) bool {
	switch ErrorCode(err) {
	case ENOTFOUND, EINVALID:
		return false
	}
	return true
}
