package mock

import (
	"context"

	"github.com/fwojciec/arenadl"
)

// Compile-time interface verification.
var (
	_ arenadl.RunService   = (*RunService)(nil)
	_ arenadl.AssetService = (*AssetService)(nil)
)

// RunService is a mock implementation of arenadl.RunService.
type RunService struct {
	CreateRunFn func(ctx context.Context, run *arenadl.Run) error
	FinishRunFn func(ctx context.Context, id string, discovered int, result arenadl.RunResult, errMsg string) (*arenadl.Run, error)
	FindRunsFn  func(ctx context.Context, filter arenadl.RunFilter) ([]*arenadl.Run, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *arenadl.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FinishRun(ctx context.Context, id string, discovered int, result arenadl.RunResult, errMsg string) (*arenadl.Run, error) {
	return s.FinishRunFn(ctx, id, discovered, result, errMsg)
}

func (s *RunService) FindRuns(ctx context.Context, filter arenadl.RunFilter) ([]*arenadl.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

// AssetService is a mock implementation of arenadl.AssetService.
type AssetService struct {
	CreateAssetFn func(ctx context.Context, asset *arenadl.Asset) error
	FindAssetsFn  func(ctx context.Context, filter arenadl.AssetFilter) ([]*arenadl.Asset, error)
}

func (s *AssetService) CreateAsset(ctx context.Context, asset *arenadl.Asset) error {
	return s.CreateAssetFn(ctx, asset)
}

func (s *AssetService) FindAssets(ctx context.Context, filter arenadl.AssetFilter) ([]*arenadl.Asset, error) {
	return s.FindAssetsFn(ctx, filter)
}
