// Package retry wraps fallible operations with bounded exponential backoff.
package retry

import (
	"context"
	"time"
)

// Options controls the retry schedule.
type Options struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultOptions matches the portal's observed transient-failure profile:
// three attempts, 1s base, capped at 10s.
func DefaultOptions() Options {
	return Options{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxDelay:    10 * time.Second,
	}
}

// Do executes fn, retrying on any error with delay min(base·2^(n-1), max)
// between attempts. No jitter. On exhaustion the last observed error is
// returned. Every error is treated as retryable, so callers must not wrap
// non-idempotent operations: Do cannot tell a WAF rejection from a network
// blip from a permanently malformed request.
func Do(ctx context.Context, opts Options, fn func() error) error {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if attempt == opts.MaxAttempts {
			break
		}

		delay := opts.BaseDelay << (attempt - 1)
		if opts.MaxDelay > 0 && delay > opts.MaxDelay {
			delay = opts.MaxDelay
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}
