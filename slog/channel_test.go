package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/arenadl"
	"github.com/fwojciec/arenadl/mock"
	arenaslog "github.com/fwojciec/arenadl/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingChannelService_FetchPage(t *testing.T) {
	t.Parallel()

	t.Run("logs page with block count and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ChannelService{
			FetchPageFn: func(ctx context.Context, channel string, page int) (*arenadl.ContentPage, error) {
				return &arenadl.ContentPage{Number: page, Blocks: []arenadl.Block{
					&arenadl.ImageBlock{ID: 1, SourceURL: "https://images.are.na/a.jpg"},
					&arenadl.OtherBlock{ID: 2, Kind: "Text"},
				}}, nil
			},
		}

		svc := arenaslog.NewLoggingChannelService(inner, logger)
		page, err := svc.FetchPage(context.Background(), "cats", 2)

		require.NoError(t, err)
		assert.Len(t, page.Blocks, 2)
		output := buf.String()
		assert.Contains(t, output, "channel page")
		assert.Contains(t, output, "channel=cats")
		assert.Contains(t, output, "page=2")
		assert.Contains(t, output, "blocks=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ChannelService{
			FetchPageFn: func(ctx context.Context, channel string, page int) (*arenadl.ContentPage, error) {
				return nil, arenadl.Errorf(arenadl.EUNAUTHORIZED, "channel requires authentication")
			},
		}

		svc := arenaslog.NewLoggingChannelService(inner, logger)
		_, err := svc.FetchPage(context.Background(), "private", 1)

		require.Error(t, err)
		assert.Equal(t, arenadl.EUNAUTHORIZED, arenadl.ErrorCode(err))
		output := buf.String()
		assert.Contains(t, output, "blocks=0")
		assert.Contains(t, output, "err=")
	})
}
