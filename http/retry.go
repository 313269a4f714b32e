package http

import (
	"context"
	"time"
)

// DefaultRetryDelays returns the backoff delays for request retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// withRetry runs fn until it succeeds, fails with a non-retryable error or
// runs out of delays.
func (c *Client) withRetry(ctx context.Context, fn func() error) error {
	maxAttempts := len(c.retryDelays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !isRetryable(err) || attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.retryDelays[attempt]):
		}
	}

	return lastErr
}
