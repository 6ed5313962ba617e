package download

import (
	"context"
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// RetryPolicy describes how often an asset is fetched before giving up and
// how long to wait between attempts.
type RetryPolicy struct {
	MaxAttempts int           // total attempts, including the first
	BaseDelay   time.Duration // wait after the first failed attempt
	Multiplier  float64       // growth factor between consecutive waits
}

// DefaultRetryPolicy returns 3 attempts with waits of 1s, then 2s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   1 * time.Second,
		Multiplier:  2,
	}
}

// withDefaults fills zero fields from DefaultRetryPolicy.
// A zero BaseDelay is kept only when the policy is otherwise set.
func (p RetryPolicy) withDefaults() RetryPolicy {
	def := DefaultRetryPolicy()
	if p == (RetryPolicy{}) {
		return def
	}
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = def.MaxAttempts
	}
	if p.Multiplier < 1 {
		p.Multiplier = def.Multiplier
	}
	if p.BaseDelay < 0 {
		p.BaseDelay = 0
	}
	return p
}

// Delay returns the wait after the failed attempt with the given
// zero-based index: BaseDelay * Multiplier^attempt (1s, 2s, 4s, ...).
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := float64(p.BaseDelay) * math.Pow(p.Multiplier, float64(attempt))
	if d > math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(d)
}

// Delays returns every wait the policy can produce, in order.
func (p RetryPolicy) Delays() []time.Duration {
	if p.MaxAttempts <= 1 {
		return nil
	}
	delays := make([]time.Duration, p.MaxAttempts-1)
	for i := range delays {
		delays[i] = p.Delay(i)
	}
	return delays
}

// newBackOff returns a backoff that yields exactly Delays() and stops when
// ctx is done.
func (p RetryPolicy) newBackOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.BaseDelay
	b.Multiplier = p.Multiplier
	b.RandomizationFactor = 0
	b.MaxInterval = time.Duration(math.MaxInt64)
	b.MaxElapsedTime = 0
	b.Reset()

	retries := uint64(0)
	if p.MaxAttempts > 1 {
		retries = uint64(p.MaxAttempts - 1)
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, retries), ctx)
}
