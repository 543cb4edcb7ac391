package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedBackoff time.Duration

func (f fixedBackoff) NextDelay(int) time.Duration { return time.Duration(f) }

func TestDatabaseConnectBackoff(t *testing.T) {
	backoff := DatabaseConnectBackoff()

	assert.Equal(t, 500*time.Millisecond, backoff.BaseDelay)
	assert.Equal(t, 5*time.Second, backoff.MaxDelay)
	assert.Equal(t, 2.0, backoff.Multiplier)
	assert.Equal(t, 0.1, backoff.Jitter)
}

func TestExponentialBackoff_NextDelay(t *testing.T) {
	backoff := &ExponentialBackoff{
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   1 * time.Second,
		Multiplier: 2.0,
	}

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{-1, 100 * time.Millisecond},
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 400 * time.Millisecond},
		{3, 800 * time.Millisecond},
		{4, 1 * time.Second},
		{10, 1 * time.Second},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, backoff.NextDelay(tt.attempt), "attempt %d", tt.attempt)
	}
}

func TestExponentialBackoff_JitterBounds(t *testing.T) {
	backoff := DatabaseConnectBackoff()

	for i := 0; i < 200; i++ {
		delay := backoff.NextDelay(1)
		assert.GreaterOrEqual(t, delay, 900*time.Millisecond)
		assert.LessOrEqual(t, delay, 1100*time.Millisecond)
	}
}

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	var retries []int

	err := Retry(context.Background(), 5, fixedBackoff(time.Millisecond),
		func(context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("connection refused")
			}
			return nil
		},
		func(attempt int, _ time.Duration, _ error) { retries = append(retries, attempt) },
	)

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, retries)
}

func TestRetry_ReturnsLastError(t *testing.T) {
	errLast := errors.New("still down")
	calls := 0

	err := Retry(context.Background(), 3, fixedBackoff(time.Millisecond),
		func(context.Context) error {
			calls++
			return errLast
		}, nil)

	assert.ErrorIs(t, err, errLast)
	assert.Equal(t, 3, calls)
}

func TestRetry_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	err := Retry(ctx, 5, fixedBackoff(time.Hour),
		func(context.Context) error {
			cancel()
			return errors.New("down")
		}, nil)

	assert.ErrorIs(t, err, context.Canceled)
}
