package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/arenadl"
)

var (
	_ arenadl.AssetFetcher = (*LoggingAssetFetcher)(nil)
	_ arenadl.AssetStore   = (*LoggingAssetStore)(nil)
)

// LoggingAssetFetcher wraps an AssetFetcher with debug logging.
type LoggingAssetFetcher struct {
	next   arenadl.AssetFetcher
	logger *slog.Logger
}

// NewLoggingAssetFetcher creates a new LoggingAssetFetcher.
func NewLoggingAssetFetcher(next arenadl.AssetFetcher, logger *slog.Logger) *LoggingAssetFetcher {
	return &LoggingAssetFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingAssetFetcher) Fetch(ctx context.Context, url string) (data []byte, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// LoggingAssetStore wraps an AssetStore with debug logging.
// Only writes are logged.
type LoggingAssetStore struct {
	next   arenadl.AssetStore
	logger *slog.Logger
}

// NewLoggingAssetStore creates a new LoggingAssetStore.
func NewLoggingAssetStore(next arenadl.AssetStore, logger *slog.Logger) *LoggingAssetStore {
	return &LoggingAssetStore{next: next, logger: logger}
}

// Exists delegates to the wrapped store.
func (s *LoggingAssetStore) Exists(name string) (bool, error) {
	return s.next.Exists(name)
}

// Write delegates to the wrapped store and logs the operation.
func (s *LoggingAssetStore) Write(ctx context.Context, name string, data []byte) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("write",
			"file", name,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Write(ctx, name, data)
}
