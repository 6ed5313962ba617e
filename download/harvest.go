package download

import (
	"context"

	"github.com/fwojciec/arenadl"
)

// HarvestResult is everything a completed harvest produced.
type HarvestResult struct {
	Discovery *Discovery
	Result    arenadl.RunResult
	Downloads []arenadl.DownloadResult // in completion order
}

// Harvester discovers a channel's images and downloads them.
type Harvester struct {
	Channels    arenadl.ChannelService
	Downloader  *Downloader
	Concurrency int
	PageErrors  arenadl.PageErrorPolicy
	MaxPages    int
	Log         LogFunc
}

// Harvest runs discovery and then the bounded download of every task.
// Discovery errors are returned as-is and no asset is requested.
func (h *Harvester) Harvest(ctx context.Context, channel string, progress arenadl.ProgressFunc) (*HarvestResult, error) {
	disc, err := Discover(ctx, h.Channels, channel,
		WithPageErrors(h.PageErrors),
		WithMaxPages(h.MaxPages),
	)
	if err != nil {
		return nil, err
	}

	h.log("discovered %d images across %d pages", len(disc.Tasks), disc.Pages)
	for _, c := range disc.Collisions {
		h.log("skipping %s: filename %s already taken by %s", c.Dropped, c.Filename, c.Kept)
	}
	for _, u := range disc.Invalid {
		h.log("skipping %s: no usable filename", u)
	}
	if disc.Truncated != nil {
		h.log("discovery stopped early: %v", disc.Truncated)
	}

	out := &HarvestResult{
		Discovery: disc,
		Downloads: make([]arenadl.DownloadResult, 0, len(disc.Tasks)),
	}

	// Schedule never runs onEach concurrently.
	onEach := func(p arenadl.Progress) {
		out.Downloads = append(out.Downloads, p.Result)
		if progress != nil {
			progress(p)
		}
	}

	out.Result = Schedule(ctx, disc.Tasks, h.Concurrency, h.Downloader.Download, onEach)
	return out, nil
}

func (h *Harvester) log(format string, args ...any) {
	if h.Log != nil {
		h.Log(format, args...)
	}
}
