package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/arenadl"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ arenadl.AssetService = (*AssetService)(nil)

// AssetService implements arenadl.AssetService using SQLite.
type AssetService struct {
	db *DB
}

// NewAssetService creates a new AssetService.
func NewAssetService(db *DB) *AssetService {
	return &AssetService{db: db}
}

// CreateAsset records a single task outcome.
func (s *AssetService) CreateAsset(ctx context.Context, asset *arenadl.Asset) error {
	if err := asset.Validate(); err != nil {
		return err
	}

	asset.ID = uuid.New().String()
	asset.RecordedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO assets (id, run_id, source_url, filename, outcome, attempts, bytes, content_hash, error, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, asset.ID, asset.RunID, asset.SourceURL, asset.Filename, asset.Outcome.String(),
		asset.Attempts, asset.Bytes, asset.ContentHash, asset.Error, formatTime(asset.RecordedAt))

	return err
}

// FindAssets retrieves assets matching the filter in the order they were recorded.
func (s *AssetService) FindAssets(ctx context.Context, filter arenadl.AssetFilter) ([]*arenadl.Asset, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, run_id, source_url, filename, outcome, attempts, bytes, content_hash, error, recorded_at FROM assets WHERE 1=1")

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.Outcome != nil {
		query.WriteString(" AND outcome = ?")
		args = append(args, filter.Outcome.String())
	}

	query.WriteString(" ORDER BY recorded_at, rowid")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []*arenadl.Asset
	for rows.Next() {
		var asset arenadl.Asset
		var outcome, recordedAt string

		if err := rows.Scan(&asset.ID, &asset.RunID, &asset.SourceURL, &asset.Filename, &outcome,
			&asset.Attempts, &asset.Bytes, &asset.ContentHash, &asset.Error, &recordedAt); err != nil {
			return nil, err
		}

		asset.Outcome, err = arenadl.ParseOutcome(outcome)
		if err != nil {
			return nil, fmt.Errorf("failed to parse outcome: %w", err)
		}
		if asset.RecordedAt, err = parseTime(recordedAt, "recorded_at"); err != nil {
			return nil, err
		}

		assets = append(assets, &asset)
	}

	return assets, rows.Err()
}
