package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstWaitReturnsImmediately(t *testing.T) {
	l := New(time.Second)
	start := time.Now()
	require.NoError(t, l.Wait(context.Background()))
	assert.Less(t, time.Since(start), 200*time.Millisecond)
}

func TestConsecutiveWaitsAreSpaced(t *testing.T) {
	delay := 50 * time.Millisecond
	l := New(delay)

	require.NoError(t, l.Wait(context.Background()))
	start := time.Now()
	require.NoError(t, l.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), delay-5*time.Millisecond)
}

func TestConcurrentCallersAllSpaced(t *testing.T) {
	delay := 20 * time.Millisecond
	l := New(delay)

	var wg sync.WaitGroup
	start := time.Now()
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Wait(context.Background())
		}()
	}
	wg.Wait()
	// No ordering guarantee, but three callers cannot all complete instantly.
	assert.GreaterOrEqual(t, time.Since(start), delay-5*time.Millisecond)
}

func TestWaitHonorsCancellation(t *testing.T) {
	l := New(time.Hour)
	require.NoError(t, l.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := l.Wait(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
