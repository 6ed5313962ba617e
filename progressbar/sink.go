// Package progressbar renders download progress in the terminal using
// github.com/schollz/progressbar/v3.
package progressbar

import (
	"fmt"
	"io"

	"github.com/fwojciec/arenadl"
	"github.com/fwojciec/arenadl/download"
	"github.com/schollz/progressbar/v3"
)

// URLWidth is the widest source URL printed on a failure line.
const URLWidth = 60

// Sink turns progress callbacks into a single progress bar. The bar is
// created on the first update, once the total is known.
//
// Sink is not safe for concurrent use; arenadl progress callbacks are
// never concurrent.
type Sink struct {
	w           io.Writer
	description string
	bar         *progressbar.ProgressBar

	// Failures, when set, receives one line per failed task.
	Failures io.Writer
}

// NewSink returns a Sink that draws on w.
func NewSink(w io.Writer, description string) *Sink {
	return &Sink{w: w, description: description}
}

// Update records one completed task. Its signature matches arenadl.ProgressFunc.
func (s *Sink) Update(p arenadl.Progress) {
	if s.bar == nil {
		s.bar = progressbar.NewOptions(p.Total,
			progressbar.OptionSetWriter(s.w),
			progressbar.OptionSetDescription(s.description),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	}

	if p.Result.Outcome == arenadl.OutcomeFailed && s.Failures != nil {
		_ = s.bar.Clear()
		fmt.Fprintf(s.Failures, "  fail %s: %v\n", download.TruncateURL(p.Result.Task.SourceURL, URLWidth), p.Result.Err)
	}

	_ = s.bar.Set(p.Completed)
}

// Finish completes and clears the bar. It is a no-op when nothing was reported.
func (s *Sink) Finish() error {
	if s.bar == nil {
		return nil
	}
	return s.bar.Finish()
}
