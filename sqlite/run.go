package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/arenadl"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ arenadl.RunService = (*RunService)(nil)

// RunService implements arenadl.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun records the start of a run.
func (s *RunService) CreateRun(ctx context.Context, run *arenadl.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, channel, output_dir, discovered, successful, failed, skipped, error, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Channel, run.OutputDir, run.Discovered, run.Successful, run.Failed, run.Skipped, run.Error,
		formatTime(run.StartedAt), formatTime(run.FinishedAt))

	return err
}

// FinishRun stores the final counts of a run and the reason it failed, if any.
func (s *RunService) FinishRun(ctx context.Context, id string, discovered int, result arenadl.RunResult, errMsg string) (*arenadl.Run, error) {
	finishedAt := time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		UPDATE runs
		SET discovered = ?, successful = ?, failed = ?, skipped = ?, error = ?, finished_at = ?
		WHERE id = ?
	`, discovered, result.Successful, result.Failed, result.Skipped, errMsg, formatTime(finishedAt), id)
	if err != nil {
		return nil, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, arenadl.Errorf(arenadl.ENOTFOUND, "run not found")
	}

	return s.findRunByID(ctx, id)
}

func (s *RunService) findRunByID(ctx context.Context, id string) (*arenadl.Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, channel, output_dir, discovered, successful, failed, skipped, error, started_at, finished_at
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, arenadl.Errorf(arenadl.ENOTFOUND, "run not found")
	}
	return run, err
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter arenadl.RunFilter) ([]*arenadl.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, channel, output_dir, discovered, successful, failed, skipped, error, started_at, finished_at FROM runs WHERE 1=1")

	if filter.Channel != nil {
		query.WriteString(" AND channel = ?")
		args = append(args, *filter.Channel)
	}

	query.WriteString(" ORDER BY started_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*arenadl.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*arenadl.Run, error) {
	var run arenadl.Run
	var startedAt, finishedAt string

	if err := row.Scan(&run.ID, &run.Channel, &run.OutputDir, &run.Discovered,
		&run.Successful, &run.Failed, &run.Skipped, &run.Error, &startedAt, &finishedAt); err != nil {
		return nil, err
	}

	var err error
	if run.StartedAt, err = parseTime(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseTime(finishedAt, "finished_at"); err != nil {
		return nil, err
	}
	return &run, nil
}
