package mock

import (
	"context"

	"github.com/fwojciec/arenadl"
)

// Compile-time interface verification.
var (
	_ arenadl.AssetFetcher = (*AssetFetcher)(nil)
	_ arenadl.AssetStore   = (*AssetStore)(nil)
	_ arenadl.HostLimiter  = (*HostLimiter)(nil)
)

// AssetFetcher is a mock implementation of arenadl.AssetFetcher.
type AssetFetcher struct {
	FetchFn func(ctx context.Context, url string) ([]byte, error)
}

func (f *AssetFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f.FetchFn(ctx, url)
}

// AssetStore is a mock implementation of arenadl.AssetStore.
type AssetStore struct {
	ExistsFn func(name string) (bool, error)
	WriteFn  func(ctx context.Context, name string, data []byte) error
}

func (s *AssetStore) Exists(name string) (bool, error) {
	return s.ExistsFn(name)
}

func (s *AssetStore) Write(ctx context.Context, name string, data []byte) error {
	return s.WriteFn(ctx, name, data)
}

// HostLimiter is a mock implementation of arenadl.HostLimiter.
type HostLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
