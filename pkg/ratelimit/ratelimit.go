// Package ratelimit enforces a minimum spacing between portal requests.
// The portal tolerates slow, human-paced traffic; bursts get the WAF's
// attention, so every network-touching operation shares one Limiter.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter suspends callers until at least delay has elapsed since the
// previous call's completion, process-wide. The lock is held for the whole
// wait, so racing callers are serialized at rate-limit granularity; there is
// no fairness ordering beyond what the mutex provides, which is fine at this
// workload's concurrency.
type Limiter struct {
	mu       sync.Mutex
	delay    time.Duration
	lastDone time.Time
}

// New creates a Limiter with the given minimum spacing.
func New(delay time.Duration) *Limiter {
	return &Limiter{delay: delay}
}

// Wait blocks until the spacing requirement is met, then records the new
// last-request timestamp so nested or retried calls are also throttled.
// Returns early with ctx.Err() if the context is cancelled while sleeping;
// the timestamp is not advanced in that case.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if wait := l.delay - time.Since(l.lastDone); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	l.lastDone = time.Now()
	return nil
}
