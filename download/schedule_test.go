package download_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/arenadl"
	"github.com/fwojciec/arenadl/download"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberedTasks(n int) []arenadl.DownloadTask {
	urls := make([]string, n)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://images.are.na/%d.jpg", i)
	}
	return tasksFor(urls...)
}

func TestSchedule(t *testing.T) {
	t.Parallel()

	t.Run("returns zero result for no tasks", func(t *testing.T) {
		t.Parallel()

		var calls int
		result := download.Schedule(context.Background(), nil, 5,
			func(_ context.Context, task arenadl.DownloadTask) arenadl.DownloadResult {
				return arenadl.DownloadResult{Task: task}
			},
			func(arenadl.Progress) { calls++ },
		)

		assert.Equal(t, arenadl.RunResult{}, result)
		assert.Zero(t, calls)
	})

	t.Run("counts every outcome exactly once", func(t *testing.T) {
		t.Parallel()

		tasks := numberedTasks(30)
		result := download.Schedule(context.Background(), tasks, 4,
			func(_ context.Context, task arenadl.DownloadTask) arenadl.DownloadResult {
				res := arenadl.DownloadResult{Task: task}
				var n int
				fmt.Sscanf(task.Filename, "%d.jpg", &n)
				switch n % 3 {
				case 0:
					res.Outcome = arenadl.OutcomeSucceeded
				case 1:
					res.Outcome = arenadl.OutcomeSkipped
				default:
					res.Outcome = arenadl.OutcomeFailed
				}
				return res
			},
			nil,
		)

		assert.Equal(t, 30, result.Total())
		assert.Equal(t, 20, result.Successful)
		assert.Equal(t, 10, result.Skipped)
		assert.Equal(t, 10, result.Failed)
	})

	t.Run("processes each task exactly once", func(t *testing.T) {
		t.Parallel()

		tasks := numberedTasks(100)
		var mu sync.Mutex
		seen := make(map[string]int)

		download.Schedule(context.Background(), tasks, 8,
			func(_ context.Context, task arenadl.DownloadTask) arenadl.DownloadResult {
				mu.Lock()
				seen[task.Filename]++
				mu.Unlock()
				return arenadl.DownloadResult{Task: task}
			},
			nil,
		)

		require.Len(t, seen, 100)
		for name, n := range seen {
			assert.Equal(t, 1, n, name)
		}
	})

	t.Run("never exceeds the concurrency limit", func(t *testing.T) {
		t.Parallel()

		var inFlight, peak atomic.Int32
		download.Schedule(context.Background(), numberedTasks(40), 3,
			func(_ context.Context, task arenadl.DownloadTask) arenadl.DownloadResult {
				n := inFlight.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(2 * time.Millisecond)
				inFlight.Add(-1)
				return arenadl.DownloadResult{Task: task}
			},
			nil,
		)

		assert.LessOrEqual(t, peak.Load(), int32(3))
		assert.Positive(t, peak.Load())
	})

	t.Run("reports strictly increasing progress without overlap", func(t *testing.T) {
		t.Parallel()

		var active atomic.Int32
		var completed []int
		download.Schedule(context.Background(), numberedTasks(50), 5,
			func(_ context.Context, task arenadl.DownloadTask) arenadl.DownloadResult {
				return arenadl.DownloadResult{Task: task}
			},
			func(p arenadl.Progress) {
				assert.Equal(t, int32(1), active.Add(1), "callback overlapped")
				assert.Equal(t, 50, p.Total)
				completed = append(completed, p.Completed)
				active.Add(-1)
			},
		)

		require.Len(t, completed, 50)
		for i, c := range completed {
			assert.Equal(t, i+1, c)
		}
	})

	t.Run("uses default concurrency for non-positive values", func(t *testing.T) {
		t.Parallel()

		result := download.Schedule(context.Background(), numberedTasks(7), 0,
			func(_ context.Context, task arenadl.DownloadTask) arenadl.DownloadResult {
				return arenadl.DownloadResult{Task: task}
			},
			nil,
		)

		assert.Equal(t, 7, result.Successful)
	})

	t.Run("stops claiming tasks after cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var started atomic.Int32
		result := download.Schedule(ctx, numberedTasks(100), 1,
			func(_ context.Context, task arenadl.DownloadTask) arenadl.DownloadResult {
				if started.Add(1) == 10 {
					cancel()
				}
				return arenadl.DownloadResult{Task: task}
			},
			nil,
		)

		assert.Equal(t, int32(10), started.Load())
		assert.Equal(t, 10, result.Total())
	})
}
