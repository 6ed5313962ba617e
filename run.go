package arenadl

import (
	"context"
	"time"
)

// Run is the recorded history of one fetch invocation.
type Run struct {
	ID         string    `json:"id"`
	Channel    string    `json:"channel"`
	OutputDir  string    `json:"outputDir"`
	Discovered int       `json:"discovered"`
	Successful int       `json:"successful"`
	Failed     int       `json:"failed"`
	Skipped    int       `json:"skipped"`
	Error      string    `json:"error"` // why the run stopped early; empty on completion
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.Channel == "" {
		return Errorf(EINVALID, "run channel required")
	}
	return nil
}

// Result returns the run's counts as a RunResult.
func (r *Run) Result() RunResult {
	return RunResult{Successful: r.Successful, Failed: r.Failed, Skipped: r.Skipped}
}

// RunService records fetch runs.
type RunService interface {
	// CreateRun records the start of a run.
	CreateRun(ctx context.Context, run *Run) error

	// FinishRun stores the final counts of a run and, when the run failed,
	// the reason. Returns ENOTFOUND if the run does not exist.
	FinishRun(ctx context.Context, id string, discovered int, result RunResult, errMsg string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	Channel *string `json:"channel"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// Asset is the recorded outcome of one task within a run.
type Asset struct {
	ID          string    `json:"id"`
	RunID       string    `json:"runId"`
	SourceURL   string    `json:"sourceUrl"`
	Filename    string    `json:"filename"`
	Outcome     Outcome   `json:"outcome"`
	Attempts    int       `json:"attempts"`
	Bytes       int       `json:"bytes"`
	ContentHash string    `json:"contentHash"`
	Error       string    `json:"error"`
	RecordedAt  time.Time `json:"recordedAt"`
}

// NewAsset builds the record for a download result.
func NewAsset(runID string, res DownloadResult) *Asset {
	a := &Asset{
		RunID:       runID,
		SourceURL:   res.Task.SourceURL,
		Filename:    res.Task.Filename,
		Outcome:     res.Outcome,
		Attempts:    res.Attempts,
		Bytes:       res.Bytes,
		ContentHash: res.ContentHash,
	}
	if res.Err != nil {
		a.Error = res.Err.Error()
	}
	return a
}

// Validate returns an error if the asset contains invalid fields.
func (a *Asset) Validate() error {
	if a.RunID == "" {
		return Errorf(EINVALID, "asset run ID required")
	}
	if a.SourceURL == "" {
		return Errorf(EINVALID, "asset source URL required")
	}
	return nil
}

// AssetService records per-task outcomes.
type AssetService interface {
	// CreateAsset records a single task outcome.
	CreateAsset(ctx context.Context, asset *Asset) error

	// FindAssets retrieves assets matching the filter.
	FindAssets(ctx context.Context, filter AssetFilter) ([]*Asset, error)
}

// AssetFilter represents a filter for FindAssets.
type AssetFilter struct {
	RunID   *string  `json:"runId"`
	Outcome *Outcome `json:"outcome"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
