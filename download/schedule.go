package download

import (
	"context"
	"sync"

	"github.com/fwojciec/arenadl"
	"golang.org/x/sync/errgroup"
)

// DownloadFunc runs a single task to a terminal outcome.
type DownloadFunc func(ctx context.Context, task arenadl.DownloadTask) arenadl.DownloadResult

// Schedule runs every task through download with at most concurrency tasks
// in flight and returns the tally. onEach, when set, is called once per
// completed task; calls never overlap and Completed increases by one each
// time.
//
// Cancelling ctx stops workers from claiming further tasks. Unclaimed tasks
// are not counted.
func Schedule(ctx context.Context, tasks []arenadl.DownloadTask, concurrency int, download DownloadFunc, onEach arenadl.ProgressFunc) arenadl.RunResult {
	if concurrency <= 0 {
		concurrency = arenadl.DefaultConcurrency
	}

	queue := make(chan arenadl.DownloadTask, len(tasks))
	for _, t := range tasks {
		queue <- t
	}
	close(queue)

	var (
		mu        sync.Mutex
		result    arenadl.RunResult
		completed int
		total     = len(tasks)
	)

	var g errgroup.Group
	for range min(concurrency, max(total, 1)) {
		g.Go(func() error {
			for {
				if ctx.Err() != nil {
					return nil
				}
				task, ok := <-queue
				if !ok {
					return nil
				}

				res := download(ctx, task)

				mu.Lock()
				result.Add(res)
				completed++
				if onEach != nil {
					onEach(arenadl.Progress{Completed: completed, Total: total, Result: res})
				}
				mu.Unlock()
			}
		})
	}
	_ = g.Wait()

	return result
}
