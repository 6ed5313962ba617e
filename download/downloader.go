package download

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/fwojciec/arenadl"
)

// ErrEmptyAsset is returned by an attempt that received a zero-length body.
var ErrEmptyAsset = errors.New("empty asset body")

// Downloader retrieves one asset per task, retrying transient failures,
// and persists it through Store. Failures are reported in the result, never
// returned.
type Downloader struct {
	Fetcher arenadl.AssetFetcher
	Store   arenadl.AssetStore
	Limiter arenadl.HostLimiter // optional
	Retry   RetryPolicy         // zero value means DefaultRetryPolicy
	Log     LogFunc             // optional, receives one line per retry

	// NewTimer overrides the timer used between attempts. Nil uses real time.
	NewTimer func() backoff.Timer
}

// Download runs one task to a terminal outcome.
func (d *Downloader) Download(ctx context.Context, task arenadl.DownloadTask) arenadl.DownloadResult {
	res := arenadl.DownloadResult{Task: task}

	exists, err := d.Store.Exists(task.Filename)
	if err != nil {
		res.Outcome = arenadl.OutcomeFailed
		res.Err = fmt.Errorf("check %s: %w", task.Filename, err)
		return res
	}
	if exists {
		res.Outcome = arenadl.OutcomeSkipped
		return res
	}

	host := ""
	if u, err := url.Parse(task.SourceURL); err == nil {
		host = u.Host
	}

	var data []byte
	op := func() error {
		res.Attempts++
		if d.Limiter != nil {
			if err := d.Limiter.Wait(ctx, host); err != nil {
				return backoff.Permanent(err)
			}
		}
		body, err := d.Fetcher.Fetch(ctx, task.SourceURL)
		if err != nil {
			if isPermanent(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		if len(body) == 0 {
			return ErrEmptyAsset
		}
		data = body
		return nil
	}

	notify := func(err error, wait time.Duration) {
		if d.Log != nil {
			d.Log("retrying %s in %s after attempt %d: %v", task.SourceURL, wait, res.Attempts, err)
		}
	}

	var timer backoff.Timer
	if d.NewTimer != nil {
		timer = d.NewTimer()
	}

	policy := d.Retry.withDefaults()
	if err := backoff.RetryNotifyWithTimer(op, policy.newBackOff(ctx), notify, timer); err != nil {
		res.Outcome = arenadl.OutcomeFailed
		res.Err = err
		return res
	}

	if err := d.Store.Write(ctx, task.Filename, data); err != nil {
		res.Outcome = arenadl.OutcomeFailed
		res.Err = fmt.Errorf("write %s: %w", task.Filename, err)
		return res
	}

	res.Outcome = arenadl.OutcomeSucceeded
	res.Bytes = len(data)
	res.ContentHash = ComputeHash(data)
	return res
}

// isPermanent reports whether another attempt cannot change the answer.
func isPermanent(err error) bool {
	switch arenadl.ErrorCode(err) {
	case arenadl.EINVALID, arenadl.ENOTFOUND, arenadl.EUNAUTHORIZED:
		return true
	}
	return false
}
