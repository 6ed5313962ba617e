// Package slog provides logging decorators for arenadl services using log/slog.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/arenadl"
)

// Ensure LoggingChannelService implements arenadl.ChannelService.
var _ arenadl.ChannelService = (*LoggingChannelService)(nil)

// LoggingChannelService wraps a ChannelService with debug logging.
type LoggingChannelService struct {
	next   arenadl.ChannelService
	logger *slog.Logger
}

// NewLoggingChannelService creates a new LoggingChannelService.
func NewLoggingChannelService(next arenadl.ChannelService, logger *slog.Logger) *LoggingChannelService {
	return &LoggingChannelService{next: next, logger: logger}
}

// FetchPage delegates to the wrapped service and logs the operation.
func (s *LoggingChannelService) FetchPage(ctx context.Context, channel string, page int) (p *arenadl.ContentPage, err error) {
	defer func(begin time.Time) {
		blocks := 0
		if p != nil {
			blocks = len(p.Blocks)
		}
		s.logger.Info("channel page",
			"channel", channel,
			"page", page,
			"blocks", blocks,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchPage(ctx, channel, page)
}
