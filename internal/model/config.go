package model

//
// Run configuration
//

import (
	"errors"
	"fmt"
	"time"
)

// Config contains the immutable configuration of a run. Construct it
// once from command line flags and pass it by value; there are no
// package level mutable defaults.
type Config struct {
	// Timeout is the timeout of a single query attempt.
	Timeout time.Duration

	// MaxRetries is how many extra attempts we perform after a
	// transient failure.
	MaxRetries int

	// Workers is the size of the worker pool.
	Workers int

	// MaxConsecutiveFailures is the consecutive-failure count at
	// which a resolver becomes dropped.
	MaxConsecutiveFailures int64

	// MinSuccessRate is the historical success rate below which a
	// resolver is flagged unhealthy in reports.
	MinSuccessRate float64

	// QuickFailThreshold is the in-run consecutive-failure count at
	// which we stop issuing tasks for a resolver.
	QuickFailThreshold int64
}

// ErrInvalidConfig indicates a configuration field is out of range.
var ErrInvalidConfig = errors.New("model: invalid configuration")

// Check returns an error wrapping ErrInvalidConfig if any field is
// out of its documented range.
func (c Config) Check() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("%w: retries must be nonnegative", ErrInvalidConfig)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive", ErrInvalidConfig)
	}
	if c.MaxConsecutiveFailures <= 0 {
		return fmt.Errorf("%w: max consecutive failures must be positive", ErrInvalidConfig)
	}
	if c.MinSuccessRate < 0 || c.MinSuccessRate > 1 {
		return fmt.Errorf("%w: min success rate must be in [0, 1]", ErrInvalidConfig)
	}
	if c.QuickFailThreshold <= 0 {
		return fmt.Errorf("%w: quick fail threshold must be positive", ErrInvalidConfig)
	}
	return nil
}
