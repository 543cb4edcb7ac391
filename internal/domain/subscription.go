package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/squareboat/razorpay-cashier/pkg/timeutil"
)

// SubscriptionStatus represents the subscription state.
// Values other than the constants below are stored verbatim as reported by the gateway.
type SubscriptionStatus string

const (
	SubscriptionStatusCreated       SubscriptionStatus = "created"
	SubscriptionStatusAuthenticated SubscriptionStatus = "authenticated"
	SubscriptionStatusActive        SubscriptionStatus = "active"
	SubscriptionStatusTrialed       SubscriptionStatus = "trialed"
	SubscriptionStatusPaused        SubscriptionStatus = "paused"
	SubscriptionStatusHalted        SubscriptionStatus = "halted"
	SubscriptionStatusCancelled     SubscriptionStatus = "cancelled"
	SubscriptionStatusCompleted     SubscriptionStatus = "completed"
	SubscriptionStatusExpired       SubscriptionStatus = "expired"
)

// DefaultSubscriptionName is the logical name used when the caller does not pick one
const DefaultSubscriptionName = "default"

// In reports whether s is one of the given statuses
func (s SubscriptionStatus) In(statuses ...SubscriptionStatus) bool {
	for _, candidate := range statuses {
		if s == candidate {
			return true
		}
	}
	return false
}

// Subscription is the local mirror of a gateway subscription
type Subscription struct {
	CreatedAt              time.Time          `json:"created_at"`
	UpdatedAt              time.Time          `json:"updated_at"`
	TrialEndsAt            *time.Time         `json:"trial_ends_at"`
	PausedAt               *time.Time         `json:"paused_at"`
	ResumedAt              *time.Time         `json:"resumed_at"`
	CanceledAt             *time.Time         `json:"canceled_at"`
	GraceEndsAt            *time.Time         `json:"grace_ends_at"`
	UserID                 string             `json:"user_id"`
	Name                   string             `json:"name"`
	RazorpaySubscriptionID string             `json:"razorpay_subscription_id"`
	PlanID                 string             `json:"plan_id"`
	Status                 SubscriptionStatus `json:"status"`
	ID                     uuid.UUID          `json:"id"`
	IsPaused               bool               `json:"is_paused"`
}

// OnTrial returns true if the trial end is set and still in the future
func (s *Subscription) OnTrial() bool {
	return s.OnTrialAt(timeutil.Now())
}

// OnTrialAt is OnTrial evaluated at a given instant
func (s *Subscription) OnTrialAt(now time.Time) bool {
	return s.TrialEndsAt != nil && s.TrialEndsAt.After(now)
}

// HasTrialEnded returns true if the trial end is set and already in the past
func (s *Subscription) HasTrialEnded() bool {
	return s.HasTrialEndedAt(timeutil.Now())
}

// HasTrialEndedAt is HasTrialEnded evaluated at a given instant
func (s *Subscription) HasTrialEndedAt(now time.Time) bool {
	return s.TrialEndsAt != nil && s.TrialEndsAt.Before(now)
}

// Active returns true if the subscription is active or still on trial
func (s *Subscription) Active() bool {
	return s.ActiveAt(timeutil.Now())
}

// ActiveAt is Active evaluated at a given instant
func (s *Subscription) ActiveAt(now time.Time) bool {
	return s.Status == SubscriptionStatusActive || s.OnTrialAt(now)
}

// EndTrial moves an active subscription whose trial has lapsed to "trialed" and
// clears the trial end. It returns false and leaves s untouched otherwise.
// The caller is responsible for persisting the change.
func (s *Subscription) EndTrial() bool {
	return s.EndTrialAt(timeutil.Now())
}

// EndTrialAt is EndTrial evaluated at a given instant
func (s *Subscription) EndTrialAt(now time.Time) bool {
	if !s.HasTrialEndedAt(now) || s.Status != SubscriptionStatusActive {
		return false
	}
	s.Status = SubscriptionStatusTrialed
	s.TrialEndsAt = nil
	return true
}

// InGracePeriod returns true if the grace end is set and still in the future
func (s *Subscription) InGracePeriod() bool {
	return s.InGracePeriodAt(timeutil.Now())
}

// InGracePeriodAt is InGracePeriod evaluated at a given instant
func (s *Subscription) InGracePeriodAt(now time.Time) bool {
	return s.GraceEndsAt != nil && s.GraceEndsAt.After(now)
}

// Paused returns true if billing for the subscription is paused
func (s *Subscription) Paused() bool {
	return s.IsPaused
}

// Cancelled returns true if the subscription has been cancelled
func (s *Subscription) Cancelled() bool {
	return s.Status == SubscriptionStatusCancelled || s.CanceledAt != nil
}

// Ended returns true once a cancelled subscription is past its grace period
func (s *Subscription) Ended() bool {
	return s.Cancelled() && !s.InGracePeriod()
}

// Valid returns true if the owner should still get the subscription's benefits
func (s *Subscription) Valid() bool {
	return s.Active() || s.InGracePeriod()
}

// MarkPaused records a successful remote pause
func (s *Subscription) MarkPaused(now time.Time, remoteStatus SubscriptionStatus) {
	s.IsPaused = true
	s.PausedAt = timeutil.Ptr(now)
	if remoteStatus != "" {
		s.Status = remoteStatus
	}
}

// MarkResumed records a successful remote resume
func (s *Subscription) MarkResumed(now time.Time) {
	s.IsPaused = false
	s.ResumedAt = timeutil.Ptr(now)
}

// MarkCancelled records a successful remote cancellation. A positive graceDays
// opens a grace window ending graceDays after now; otherwise no grace is granted.
func (s *Subscription) MarkCancelled(now time.Time, graceDays int) {
	s.CanceledAt = timeutil.Ptr(now)
	s.Status = SubscriptionStatusCancelled
	s.GraceEndsAt = nil
	if graceDays > 0 {
		s.GraceEndsAt = timeutil.Ptr(timeutil.AddDays(now, graceDays))
	}
}
