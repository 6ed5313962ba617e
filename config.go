package arenadl

import (
	"path/filepath"
	"time"
)

// Defaults applied by Config.WithDefaults.
const (
	DefaultConcurrency  = 5
	DefaultMaxAttempts  = 3
	DefaultTimeout      = 30 * time.Second
	DefaultMaxRedirects = 5
	DefaultImagesDir    = "images"
)

// PageErrorPolicy decides what discovery does when a page cannot be fetched
// for a reason other than authentication or a missing channel.
type PageErrorPolicy int

const (
	// PageErrorAbort stops the run and returns the error.
	PageErrorAbort PageErrorPolicy = iota
	// PageErrorPartial stops paging and keeps the blocks found so far.
	PageErrorPartial
)

// String returns the policy name.
func (p PageErrorPolicy) String() string {
	if p == PageErrorPartial {
		return "partial"
	}
	return "abort"
}

// Config holds everything a single run needs. It is built once by the
// caller and passed to the components that need it.
type Config struct {
	Channel   string
	OutputDir string
	Token     string // optional bearer token

	Concurrency  int
	MaxAttempts  int
	Timeout      time.Duration
	MaxRedirects int
	RatePerHost  float64 // asset requests per second per host; 0 disables

	PageErrors PageErrorPolicy
}

// WithDefaults returns a copy of c with zero fields set to their defaults.
// OutputDir defaults to images/<channel>.
func (c Config) WithDefaults() Config {
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxRedirects <= 0 {
		c.MaxRedirects = DefaultMaxRedirects
	}
	if c.OutputDir == "" && c.Channel != "" {
		c.OutputDir = filepath.Join(DefaultImagesDir, c.Channel)
	}
	return c
}

// Validate returns an error if the config cannot be used for a run.
func (c Config) Validate() error {
	if c.Channel == "" {
		return Errorf(EINVALID, "channel required")
	}
	if c.OutputDir == "" {
		return Errorf(EINVALID, "output directory required")
	}
	if c.RatePerHost < 0 {
		return Errorf(EINVALID, "rate per host must not be negative")
	}
	return nil
}
