package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

// TestSubscription_TrialPredicates checks OnTrial and HasTrialEnded are exclusive
func TestSubscription_TrialPredicates(t *testing.T) {
	now := time.Date(2025, 4, 9, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		trialEndsAt *time.Time
		onTrial     bool
		trialEnded  bool
	}{
		{"no trial", nil, false, false},
		{"trial ends tomorrow", timePtr(now.Add(24 * time.Hour)), true, false},
		{"trial ended yesterday", timePtr(now.Add(-24 * time.Hour)), false, true},
		{"trial ends exactly now", timePtr(now), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &Subscription{TrialEndsAt: tt.trialEndsAt}
			assert.Equal(t, tt.onTrial, sub.OnTrialAt(now))
			assert.Equal(t, tt.trialEnded, sub.HasTrialEndedAt(now))
			assert.False(t, sub.OnTrialAt(now) && sub.HasTrialEndedAt(now))
		})
	}
}

func TestSubscription_Active(t *testing.T) {
	now := time.Date(2025, 4, 9, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		status      SubscriptionStatus
		trialEndsAt *time.Time
		expected    bool
	}{
		{"active status", SubscriptionStatusActive, nil, true},
		{"created but on trial", SubscriptionStatusCreated, timePtr(now.Add(time.Hour)), true},
		{"created with expired trial", SubscriptionStatusCreated, timePtr(now.Add(-time.Hour)), false},
		{"paused", SubscriptionStatusPaused, nil, false},
		{"cancelled", SubscriptionStatusCancelled, nil, false},
		{"trialed", SubscriptionStatusTrialed, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &Subscription{Status: tt.status, TrialEndsAt: tt.trialEndsAt}
			assert.Equal(t, tt.expected, sub.ActiveAt(now))
		})
	}
}

func TestSubscription_EndTrial(t *testing.T) {
	now := time.Date(2025, 4, 9, 12, 0, 0, 0, time.UTC)
	ended := now.Add(-48 * time.Hour)

	t.Run("active subscription with lapsed trial becomes trialed", func(t *testing.T) {
		sub := &Subscription{Status: SubscriptionStatusActive, TrialEndsAt: timePtr(ended)}

		require.True(t, sub.EndTrialAt(now))
		assert.Equal(t, SubscriptionStatusTrialed, sub.Status)
		assert.Nil(t, sub.TrialEndsAt)
	})

	t.Run("already trialed is a no-op", func(t *testing.T) {
		sub := &Subscription{Status: SubscriptionStatusTrialed, TrialEndsAt: timePtr(ended)}

		assert.False(t, sub.EndTrialAt(now))
		assert.Equal(t, SubscriptionStatusTrialed, sub.Status)
		require.NotNil(t, sub.TrialEndsAt)
		assert.True(t, sub.TrialEndsAt.Equal(ended))
	})

	t.Run("second call after success changes nothing", func(t *testing.T) {
		sub := &Subscription{Status: SubscriptionStatusActive, TrialEndsAt: timePtr(ended)}
		require.True(t, sub.EndTrialAt(now))

		assert.False(t, sub.EndTrialAt(now))
		assert.Equal(t, SubscriptionStatusTrialed, sub.Status)
	})

	t.Run("trial still running", func(t *testing.T) {
		future := now.Add(time.Hour)
		sub := &Subscription{Status: SubscriptionStatusActive, TrialEndsAt: &future}

		assert.False(t, sub.EndTrialAt(now))
		assert.Equal(t, SubscriptionStatusActive, sub.Status)
	})

	t.Run("no trial configured", func(t *testing.T) {
		sub := &Subscription{Status: SubscriptionStatusActive}
		assert.False(t, sub.EndTrialAt(now))
	})
}

func TestSubscription_GracePeriod(t *testing.T) {
	now := time.Date(2025, 4, 9, 12, 0, 0, 0, time.UTC)

	sub := &Subscription{Status: SubscriptionStatusActive}
	sub.MarkCancelled(now, 5)

	require.NotNil(t, sub.CanceledAt)
	require.NotNil(t, sub.GraceEndsAt)
	assert.Equal(t, SubscriptionStatusCancelled, sub.Status)
	assert.Equal(t, 5*24*time.Hour, sub.GraceEndsAt.Sub(*sub.CanceledAt))
	assert.True(t, sub.InGracePeriodAt(now.Add(24*time.Hour)))
	assert.False(t, sub.InGracePeriodAt(now.Add(6*24*time.Hour)))
	assert.True(t, sub.Cancelled())
}

func TestSubscription_MarkCancelledWithoutGrace(t *testing.T) {
	now := time.Date(2025, 4, 9, 12, 0, 0, 0, time.UTC)
	previousGrace := now.Add(72 * time.Hour)

	for _, graceDays := range []int{0, -3} {
		sub := &Subscription{Status: SubscriptionStatusPaused, GraceEndsAt: &previousGrace}
		sub.MarkCancelled(now, graceDays)

		assert.Nil(t, sub.GraceEndsAt)
		assert.Equal(t, SubscriptionStatusCancelled, sub.Status)
		assert.False(t, sub.InGracePeriodAt(now))
	}
}

func TestSubscription_MarkPausedAndResumed(t *testing.T) {
	now := time.Date(2025, 4, 9, 12, 0, 0, 0, time.UTC)

	sub := &Subscription{Status: SubscriptionStatusActive}
	sub.MarkPaused(now, "")

	assert.True(t, sub.Paused())
	assert.Equal(t, SubscriptionStatusActive, sub.Status)
	require.NotNil(t, sub.PausedAt)
	assert.True(t, sub.PausedAt.Equal(now))

	sub.MarkPaused(now, SubscriptionStatusPaused)
	assert.Equal(t, SubscriptionStatusPaused, sub.Status)

	later := now.Add(time.Hour)
	sub.MarkResumed(later)
	assert.False(t, sub.Paused())
	require.NotNil(t, sub.ResumedAt)
	assert.True(t, sub.ResumedAt.Equal(later))
}

func TestSubscriptionStatus_In(t *testing.T) {
	assert.True(t, SubscriptionStatusPaused.In(SubscriptionStatusActive, SubscriptionStatusPaused))
	assert.False(t, SubscriptionStatusHalted.In(SubscriptionStatusActive, SubscriptionStatusPaused))
	assert.False(t, SubscriptionStatusActive.In())
}
