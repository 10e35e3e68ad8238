// Package retry provides retry logic with exponential backoff and full jitter.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Config holds retry configuration.
type Config struct {
	MaxAttempts int           // Total attempts per operation
	MaxWait     time.Duration // Cap on a single backoff sleep

	// OnRetry, if set, is called with the 0-indexed attempt that just
	// failed and the sleep chosen before the next one.
	OnRetry func(attempt int, wait time.Duration)
}

// DefaultConfig returns the defaults used against the Drive API.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 7,
		MaxWait:     64 * time.Second,
	}
}

// RetryableError wraps an error that should be retried.
type RetryableError struct {
	Err error
}

func (e RetryableError) Error() string {
	return e.Err.Error()
}

func (e RetryableError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error should be retried.
func IsRetryable(err error) bool {
	var retryable RetryableError
	return errors.As(err, &retryable)
}

// Retryable wraps an error to mark it as retryable.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return RetryableError{Err: err}
}

// ExhaustedError reports that an operation kept failing retryably until the
// attempt budget ran out.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("retries exceeded after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Wait returns the backoff sleep taken after attempt k (0-indexed) fails:
// a duration drawn uniformly from [0, min(2^k seconds, limit)).
func Wait(attempt int, limit time.Duration) time.Duration {
	if limit <= 0 {
		return 0
	}
	max := math.Min(math.Pow(2, float64(attempt)), limit.Seconds())
	return time.Duration(rand.Float64() * max * float64(time.Second))
}

// DoWithResult executes fn up to cfg.MaxAttempts times, sleeping with full
// jitter between attempts. Only errors marked with Retryable are retried;
// anything else returns immediately. When every attempt fails retryably the
// returned error wraps the last one in an ExhaustedError.
func DoWithResult[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !IsRetryable(err) {
			return zero, err
		}

		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		wait := Wait(attempt, cfg.MaxWait)
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, wait)
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(wait):
		}
	}

	return zero, &ExhaustedError{Attempts: cfg.MaxAttempts, Err: lastErr}
}
