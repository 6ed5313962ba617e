package progressbar_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/arenadl"
	"github.com/fwojciec/arenadl/progressbar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSink(t *testing.T) {
	t.Parallel()

	t.Run("draws the bar with its description", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		sink := progressbar.NewSink(&out, "cats")

		for i := 1; i <= 3; i++ {
			sink.Update(arenadl.Progress{Completed: i, Total: 3})
		}
		require.NoError(t, sink.Finish())

		assert.Contains(t, out.String(), "cats")
	})

	t.Run("reports failures on the failures writer", func(t *testing.T) {
		t.Parallel()

		var out, failures bytes.Buffer
		sink := progressbar.NewSink(&out, "cats")
		sink.Failures = &failures

		sink.Update(arenadl.Progress{Completed: 1, Total: 2, Result: arenadl.DownloadResult{
			Task:    arenadl.DownloadTask{SourceURL: "https://images.are.na/a.jpg", Filename: "a.jpg"},
			Outcome: arenadl.OutcomeSucceeded,
		}})
		sink.Update(arenadl.Progress{Completed: 2, Total: 2, Result: arenadl.DownloadResult{
			Task:    arenadl.DownloadTask{SourceURL: "https://images.are.na/b.jpg", Filename: "b.jpg"},
			Outcome: arenadl.OutcomeFailed,
			Err:     errors.New("connection reset"),
		}})

		assert.Equal(t, "  fail https://images.are.na/b.jpg: connection reset\n", failures.String())
	})

	t.Run("shortens long URLs on failure lines", func(t *testing.T) {
		t.Parallel()

		var out, failures bytes.Buffer
		sink := progressbar.NewSink(&out, "cats")
		sink.Failures = &failures
		url := "https://d2w9rnfcy7mm78.cloudfront.net/" + strings.Repeat("x", 80) + "/original_photo.jpg"

		sink.Update(arenadl.Progress{Completed: 1, Total: 1, Result: arenadl.DownloadResult{
			Task:    arenadl.DownloadTask{SourceURL: url, Filename: "original_photo.jpg"},
			Outcome: arenadl.OutcomeFailed,
			Err:     errors.New("HTTP 500"),
		}})

		line := strings.TrimSuffix(strings.TrimPrefix(failures.String(), "  fail "), ": HTTP 500\n")
		assert.Len(t, line, progressbar.URLWidth)
		assert.True(t, strings.HasPrefix(line, "..."))
		assert.True(t, strings.HasSuffix(line, "/original_photo.jpg"))
	})

	t.Run("finish without updates writes nothing", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		sink := progressbar.NewSink(&out, "cats")

		require.NoError(t, sink.Finish())
		assert.Empty(t, out.String())
	})
}
