package mock

import (
	"context"

	"github.com/fwojciec/arenadl"
)

var _ arenadl.ChannelService = (*ChannelService)(nil)

// ChannelService is a mock implementation of arenadl.ChannelService.
type ChannelService struct {
	FetchPageFn func(ctx context.Context, channel string, page int) (*arenadl.ContentPage, error)
}

func (s *ChannelService) FetchPage(ctx context.Context, channel string, page int) (*arenadl.ContentPage, error) {
	return s.FetchPageFn(ctx, channel, page)
}
