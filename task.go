package arenadl

import (
	"net/url"
	"path"
	"strings"
)

// DownloadTask is a single asset to download to a single file.
// Build tasks with NewDownloadTask so the filename is always derived the
// same way from the source URL.
type DownloadTask struct {
	SourceURL string
	Filename  string
}

// NewDownloadTask returns the task for the asset at sourceURL.
func NewDownloadTask(sourceURL string) (DownloadTask, error) {
	name, err := FilenameFromURL(sourceURL)
	if err != nil {
		return DownloadTask{}, err
	}
	return DownloadTask{SourceURL: sourceURL, Filename: name}, nil
}

// FilenameFromURL derives a destination filename from the last path segment
// of rawURL. The query string and fragment are ignored and the segment is
// URL-decoded.
// Example: https://example.com/path/to/IMG%2042.jpg?x=1 → "IMG 42.jpg"
func FilenameFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", Errorf(EINVALID, "invalid asset URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", Errorf(EINVALID, "unsupported asset URL %q", rawURL)
	}

	// Work on the escaped path so that an encoded slash stays inside the
	// final segment instead of splitting it.
	escaped := strings.TrimRight(u.EscapedPath(), "/")
	segment := path.Base(escaped)
	if segment == "." || segment == "/" || segment == "" {
		return "", Errorf(EINVALID, "asset URL %q has no filename", rawURL)
	}

	name, err := url.PathUnescape(segment)
	if err != nil {
		return "", Errorf(EINVALID, "asset URL %q has a malformed filename", rawURL)
	}

	// Decoded separators would let the name escape the output directory.
	name = strings.NewReplacer("/", "_", "\\", "_").Replace(name)
	if name == "." || name == ".." {
		return "", Errorf(EINVALID, "asset URL %q has no filename", rawURL)
	}
	return name, nil
}

// Outcome is the terminal state of a download task.
type Outcome int

const (
	// OutcomeSucceeded means the asset was downloaded and written.
	OutcomeSucceeded Outcome = iota
	// OutcomeSkipped means the destination file already existed.
	OutcomeSkipped
	// OutcomeFailed means every attempt failed or the file could not be written.
	OutcomeFailed
)

// String returns the lowercase name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(s string) (Outcome, error) {
	switch s {
	case "succeeded":
		return OutcomeSucceeded, nil
	case "skipped":
		return OutcomeSkipped, nil
	case "failed":
		return OutcomeFailed, nil
	}
	return 0, Errorf(EINVALID, "unknown outcome %q", s)
}

// DownloadResult reports what happened to one task.
type DownloadResult struct {
	Task        DownloadTask
	Outcome     Outcome
	Attempts    int    // network attempts made; zero when skipped
	Bytes       int    // bytes written on success
	ContentHash string // xxhash of the written bytes, informational only
	Err         error  // last error when Outcome is OutcomeFailed
}

// RunResult holds aggregate counts for a set of processed tasks.
//
// Skipped tasks are counted as successful and additionally reported in
// Skipped, so Successful+Failed always equals the number of tasks that were
// processed.
type RunResult struct {
	Successful int
	Failed     int
	Skipped    int
}

// Total returns the number of processed tasks.
func (r RunResult) Total() int {
	return r.Successful + r.Failed
}

// Downloaded returns the number of tasks that fetched new bytes.
func (r RunResult) Downloaded() int {
	return r.Successful - r.Skipped
}

// Add records a single result.
func (r *RunResult) Add(res DownloadResult) {
	switch res.Outcome {
	case OutcomeFailed:
		r.Failed++
	case OutcomeSkipped:
		r.Skipped++
		r.Successful++
	default:
		r.Successful++
	}
}

// Progress reports the completion of one task.
type Progress struct {
	Completed int // tasks completed so far, including this one
	Total     int
	Result    DownloadResult
}

// ProgressFunc is called exactly once per task after its outcome is known.
type ProgressFunc func(Progress)
