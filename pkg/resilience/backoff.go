package resilience

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// BackoffStrategy defines retry backoff behavior
type BackoffStrategy interface {
	NextDelay(attempt int) time.Duration
}

// ExponentialBackoff implements exponential backoff with jitter
type ExponentialBackoff struct {
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	Multiplier float64
	Jitter     float64 // 0.0-1.0, fraction of the delay added or removed at random
}

// DatabaseConnectBackoff returns the backoff used while waiting for the
// database at startup.
//
// Retry sequence (±10% jitter):
//   - Attempt 0: ~500ms
//   - Attempt 1: ~1s
//   - Attempt 2: ~2s
//   - Attempt 3: ~4s
//   - Attempt 4+: ~5s (capped)
func DatabaseConnectBackoff() *ExponentialBackoff {
	return &ExponentialBackoff{
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   5 * time.Second,
		Multiplier: 2.0,
		Jitter:     0.1,
	}
}

// NextDelay returns BaseDelay * Multiplier^attempt ± jitter, capped at MaxDelay
func (eb *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	if attempt < 0 {
		return eb.BaseDelay
	}

	delay := float64(eb.BaseDelay) * math.Pow(eb.Multiplier, float64(attempt))
	if delay > float64(eb.MaxDelay) {
		delay = float64(eb.MaxDelay)
	}

	jitterAmount := delay * eb.Jitter
	jitter := (rand.Float64()*2 - 1) * jitterAmount

	finalDelay := time.Duration(delay + jitter)
	if finalDelay < 0 {
		finalDelay = eb.BaseDelay
	}
	return finalDelay
}

// Retry calls fn up to attempts times, sleeping per backoff between failures.
// It returns nil on the first success, the last error once attempts run out,
// or the context error if ctx ends while waiting. onRetry, if set, is called
// before each wait.
func Retry(ctx context.Context, attempts int, backoff BackoffStrategy, fn func(context.Context) error, onRetry func(attempt int, delay time.Duration, err error)) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt == attempts-1 {
			break
		}

		delay := backoff.NextDelay(attempt)
		if onRetry != nil {
			onRetry(attempt+1, delay, err)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}
