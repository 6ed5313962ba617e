package download_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/arenadl"
	"github.com/fwojciec/arenadl/download"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostLimiter(t *testing.T) {
	t.Parallel()

	t.Run("implements arenadl.HostLimiter interface", func(t *testing.T) {
		t.Parallel()
		var _ arenadl.HostLimiter = download.NewHostLimiter(1)
	})

	t.Run("first request to a host is immediate", func(t *testing.T) {
		t.Parallel()

		limiter := download.NewHostLimiter(10)

		start := time.Now()
		err := limiter.Wait(context.Background(), "images.are.na")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("spaces requests to the same host", func(t *testing.T) {
		t.Parallel()

		limiter := download.NewHostLimiter(10) // 100ms apart

		require.NoError(t, limiter.Wait(context.Background(), "images.are.na"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "images.are.na")

		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("hosts are limited independently", func(t *testing.T) {
		t.Parallel()

		limiter := download.NewHostLimiter(10)

		require.NoError(t, limiter.Wait(context.Background(), "images.are.na"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "d2w9rnfcy7mm78.cloudfront.net")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("zero rate does not limit", func(t *testing.T) {
		t.Parallel()

		limiter := download.NewHostLimiter(0)

		start := time.Now()
		for range 20 {
			require.NoError(t, limiter.Wait(context.Background(), "images.are.na"))
		}
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := download.NewHostLimiter(1)
		require.NoError(t, limiter.Wait(context.Background(), "images.are.na"))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		assert.Error(t, limiter.Wait(ctx, "images.are.na"))
	})

	t.Run("concurrent waiters all complete", func(t *testing.T) {
		t.Parallel()

		limiter := download.NewHostLimiter(100)

		var wg sync.WaitGroup
		var completed atomic.Int32
		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if limiter.Wait(context.Background(), "images.are.na") == nil {
					completed.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(5), completed.Load())
	})
}
