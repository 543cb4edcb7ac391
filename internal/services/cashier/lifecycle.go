package cashier

import (
	"context"
	"fmt"

	"github.com/squareboat/razorpay-cashier/internal/domain"
	"github.com/squareboat/razorpay-cashier/internal/domain/ports"
	"github.com/squareboat/razorpay-cashier/pkg/observability"
)

var (
	pausableStatuses    = []domain.SubscriptionStatus{domain.SubscriptionStatusActive}
	resumableStatuses   = []domain.SubscriptionStatus{domain.SubscriptionStatusPaused}
	cancellableStatuses = []domain.SubscriptionStatus{
		domain.SubscriptionStatusActive,
		domain.SubscriptionStatusPaused,
		domain.SubscriptionStatusCreated,
	}
	swappableStatuses = []domain.SubscriptionStatus{
		domain.SubscriptionStatusActive,
		domain.SubscriptionStatusPaused,
	}
)

// lifecycleStep is the remote mutation and local update of one lifecycle operation
type lifecycleStep struct {
	mutate func(ctx context.Context) (*ports.RemoteSubscription, error)
	apply  func(local *domain.Subscription, remote *ports.RemoteSubscription)
	name   string
	allow  []domain.SubscriptionStatus
}

// runLifecycle fetches the remote subscription, checks its status against the
// step's precondition, performs the remote mutation and mirrors it locally.
// A failed precondition or a missing local row yields (false, nil).
func (s *Service) runLifecycle(ctx context.Context, subscriptionID string, step lifecycleStep) (bool, error) {
	remote, err := s.gateway.FetchSubscription(ctx, subscriptionID)
	if err != nil {
		observability.RecordSubscriptionOperation(step.name, observability.OutcomeFailed)
		s.logger.Error(step.name+" subscription: fetch failed",
			ports.String("subscription_id", subscriptionID),
			ports.Err(err))
		return false, fmt.Errorf("fetch subscription %s: %w", subscriptionID, err)
	}

	status := domain.SubscriptionStatus(remote.Status)
	if !status.In(step.allow...) {
		observability.RecordSubscriptionOperation(step.name, observability.OutcomeRejected)
		s.logger.Info(step.name+" subscription: precondition not met",
			ports.String("subscription_id", subscriptionID),
			ports.String("status", remote.Status))
		return false, nil
	}

	mutated, err := step.mutate(ctx)
	if err != nil {
		observability.RecordSubscriptionOperation(step.name, observability.OutcomeFailed)
		s.logger.Error(step.name+" subscription: remote call failed",
			ports.String("subscription_id", subscriptionID),
			ports.Err(err))
		return false, fmt.Errorf("%s subscription %s: %w", step.name, subscriptionID, err)
	}

	local, err := s.findLocalSubscription(ctx, subscriptionID)
	if err != nil {
		observability.RecordSubscriptionOperation(step.name, observability.OutcomeFailed)
		return false, err
	}
	if local == nil {
		observability.RecordSubscriptionOperation(step.name, observability.OutcomeRejected)
		s.logger.Warn("local subscription not found",
			ports.String("operation", step.name),
			ports.String("subscription_id", subscriptionID))
		return false, nil
	}

	step.apply(local, mutated)
	if err := s.saveSubscription(ctx, local); err != nil {
		observability.RecordSubscriptionOperation(step.name, observability.OutcomeFailed)
		s.logger.Error(step.name+" subscription: local update failed",
			ports.String("subscription_id", subscriptionID),
			ports.Err(err))
		return false, err
	}

	observability.RecordSubscriptionOperation(step.name, observability.OutcomeSuccess)
	s.logger.Info("subscription "+step.name+" applied",
		ports.String("subscription_id", subscriptionID),
		ports.String("status", string(local.Status)))
	return true, nil
}

// PauseSubscription pauses billing of an active subscription immediately
func (s *Service) PauseSubscription(ctx context.Context, subscriptionID string) (bool, error) {
	return s.runLifecycle(ctx, subscriptionID, lifecycleStep{
		name:  "pause",
		allow: pausableStatuses,
		mutate: func(ctx context.Context) (*ports.RemoteSubscription, error) {
			return s.gateway.PauseSubscription(ctx, subscriptionID)
		},
		apply: func(local *domain.Subscription, remote *ports.RemoteSubscription) {
			local.MarkPaused(s.now(), remoteStatus(remote))
		},
	})
}

// ResumeSubscription resumes billing of a paused subscription immediately
func (s *Service) ResumeSubscription(ctx context.Context, subscriptionID string) (bool, error) {
	return s.runLifecycle(ctx, subscriptionID, lifecycleStep{
		name:  "resume",
		allow: resumableStatuses,
		mutate: func(ctx context.Context) (*ports.RemoteSubscription, error) {
			return s.gateway.ResumeSubscription(ctx, subscriptionID)
		},
		apply: func(local *domain.Subscription, remote *ports.RemoteSubscription) {
			local.MarkResumed(s.now())
			if status := remoteStatus(remote); status != "" {
				local.Status = status
			}
		},
	})
}

// CancelSubscription cancels a subscription immediately. A positive graceDays
// keeps the subscription valid locally for that many days.
func (s *Service) CancelSubscription(ctx context.Context, subscriptionID string, graceDays int) (bool, error) {
	return s.runLifecycle(ctx, subscriptionID, lifecycleStep{
		name:  "cancel",
		allow: cancellableStatuses,
		mutate: func(ctx context.Context) (*ports.RemoteSubscription, error) {
			return s.gateway.CancelSubscription(ctx, subscriptionID, false)
		},
		apply: func(local *domain.Subscription, _ *ports.RemoteSubscription) {
			local.MarkCancelled(s.now(), graceDays)
		},
	})
}

// SwapPlan moves an active or paused subscription to another plan.
// The new plan is fetched first so an unknown plan fails before any update.
func (s *Service) SwapPlan(ctx context.Context, subscriptionID, newPlanID string) (bool, error) {
	return s.runLifecycle(ctx, subscriptionID, lifecycleStep{
		name:  "swap",
		allow: swappableStatuses,
		mutate: func(ctx context.Context) (*ports.RemoteSubscription, error) {
			if _, err := s.gateway.FetchPlan(ctx, newPlanID); err != nil {
				return nil, fmt.Errorf("fetch plan %s: %w", newPlanID, err)
			}
			return s.gateway.UpdateSubscription(ctx, subscriptionID, ports.UpdateSubscriptionRequest{
				PlanID: newPlanID,
			})
		},
		apply: func(local *domain.Subscription, _ *ports.RemoteSubscription) {
			local.PlanID = newPlanID
		},
	})
}

// SyncTrialStatus marks the local subscription "trialed" once its trial has
// ended while the gateway still reports it active. It returns the local row,
// updated or not, or nil when there is none.
func (s *Service) SyncTrialStatus(ctx context.Context, subscriptionID string) (*domain.Subscription, error) {
	remote, err := s.gateway.FetchSubscription(ctx, subscriptionID)
	if err != nil {
		observability.RecordSubscriptionOperation("sync_trial", observability.OutcomeFailed)
		return nil, fmt.Errorf("fetch subscription %s: %w", subscriptionID, err)
	}

	local, err := s.findLocalSubscription(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if local == nil {
		observability.RecordSubscriptionOperation("sync_trial", observability.OutcomeRejected)
		return nil, nil
	}

	if !local.HasTrialEndedAt(s.now()) || domain.SubscriptionStatus(remote.Status) != domain.SubscriptionStatusActive {
		observability.RecordSubscriptionOperation("sync_trial", observability.OutcomeRejected)
		return local, nil
	}

	local.Status = domain.SubscriptionStatusTrialed
	if err := s.saveSubscription(ctx, local); err != nil {
		observability.RecordSubscriptionOperation("sync_trial", observability.OutcomeFailed)
		return nil, err
	}

	observability.RecordSubscriptionOperation("sync_trial", observability.OutcomeSuccess)
	s.logger.Info("subscription trial ended",
		ports.String("subscription_id", subscriptionID))
	return local, nil
}

// EndTrial ends a lapsed trial on the local row without contacting the gateway
func (s *Service) EndTrial(ctx context.Context, subscriptionID string) (bool, error) {
	local, err := s.findLocalSubscription(ctx, subscriptionID)
	if err != nil {
		return false, err
	}
	if local == nil || !local.EndTrialAt(s.now()) {
		observability.RecordSubscriptionOperation("end_trial", observability.OutcomeRejected)
		return false, nil
	}

	if err := s.saveSubscription(ctx, local); err != nil {
		observability.RecordSubscriptionOperation("end_trial", observability.OutcomeFailed)
		return false, err
	}

	observability.RecordSubscriptionOperation("end_trial", observability.OutcomeSuccess)
	return true, nil
}

func remoteStatus(remote *ports.RemoteSubscription) domain.SubscriptionStatus {
	if remote == nil {
		return ""
	}
	return domain.SubscriptionStatus(remote.Status)
}
