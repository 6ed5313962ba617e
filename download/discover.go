package download

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/arenadl"
)

// DefaultMaxPages bounds pagination for channels that never return an
// empty page.
const DefaultMaxPages = 10000

// Collision records a task dropped because an earlier task already claimed
// its filename.
type Collision struct {
	Filename string
	Kept     string // source URL of the task that was kept
	Dropped  string
}

// Discovery is the outcome of walking a channel's pages.
type Discovery struct {
	Tasks      []arenadl.DownloadTask
	Pages      int // pages fetched, including the terminating empty page
	Blocks     int
	Collisions []Collision
	Invalid    []string // source URLs that yield no usable filename

	// Truncated is set when paging ended early on an error tolerated by
	// arenadl.PageErrorPartial.
	Truncated error
}

type discoverConfig struct {
	pageErrors arenadl.PageErrorPolicy
	maxPages   int
}

// DiscoverOption configures Discover.
type DiscoverOption func(*discoverConfig)

// WithPageErrors sets how page errors other than unauthorized or not found
// are treated.
func WithPageErrors(p arenadl.PageErrorPolicy) DiscoverOption {
	return func(c *discoverConfig) { c.pageErrors = p }
}

// WithMaxPages overrides DefaultMaxPages.
func WithMaxPages(n int) DiscoverOption {
	return func(c *discoverConfig) {
		if n > 0 {
			c.maxPages = n
		}
	}
}

// Discover pages through channel, starting at page 1, until an empty page
// and returns one task per image block in remote order.
func Discover(ctx context.Context, channels arenadl.ChannelService, channel string, opts ...DiscoverOption) (*Discovery, error) {
	cfg := discoverConfig{
		pageErrors: arenadl.PageErrorAbort,
		maxPages:   DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	d := &Discovery{}
	claimed := make(map[string]string) // filename -> source URL

	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if n > cfg.maxPages {
			err := arenadl.Errorf(arenadl.EINTERNAL, "channel %q has more than %d pages", channel, cfg.maxPages)
			if cfg.pageErrors == arenadl.PageErrorPartial {
				d.Truncated = err
				return d, nil
			}
			return nil, err
		}

		page, err := channels.FetchPage(ctx, channel, n)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			switch arenadl.ErrorCode(err) {
			case arenadl.EUNAUTHORIZED, arenadl.ENOTFOUND:
				return nil, err
			}
			if cfg.pageErrors == arenadl.PageErrorPartial {
				d.Truncated = fmt.Errorf("page %d: %w", n, err)
				return d, nil
			}
			return nil, fmt.Errorf("page %d: %w", n, err)
		}
		d.Pages++

		if page.Empty() {
			return d, nil
		}

		for _, b := range page.Blocks {
			d.Blocks++
			switch b := b.(type) {
			case *arenadl.ImageBlock:
				d.add(b, claimed)
			}
		}
	}
}

func (d *Discovery) add(b *arenadl.ImageBlock, claimed map[string]string) {
	task, err := arenadl.NewDownloadTask(b.SourceURL)
	if err != nil {
		d.Invalid = append(d.Invalid, b.SourceURL)
		return
	}
	// Case-insensitive filesystems would store A.JPG and a.jpg as one file.
	key := strings.ToLower(task.Filename)
	if prev, ok := claimed[key]; ok && prev != task.SourceURL {
		d.Collisions = append(d.Collisions, Collision{
			Filename: task.Filename,
			Kept:     prev,
			Dropped:  task.SourceURL,
		})
		return
	}
	claimed[key] = task.SourceURL
	d.Tasks = append(d.Tasks, task)
}
