package cashier

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/squareboat/razorpay-cashier/internal/domain"
	"github.com/squareboat/razorpay-cashier/internal/domain/ports"
	"github.com/squareboat/razorpay-cashier/pkg/observability"
	"github.com/squareboat/razorpay-cashier/pkg/timeutil"
)

// SubscriptionBuilder configures and creates a new subscription for an owner
type SubscriptionBuilder struct {
	svc        *Service
	extra      map[string]interface{}
	owner      domain.Owner
	name       string
	planID     string
	customerID string
	trialDays  int
}

// NewSubscription starts building a subscription to planID held by owner under name
func (s *Service) NewSubscription(owner domain.Owner, name, planID string) *SubscriptionBuilder {
	if name == "" {
		name = domain.DefaultSubscriptionName
	}
	return &SubscriptionBuilder{
		svc:    s,
		owner:  owner,
		name:   name,
		planID: planID,
	}
}

// WithTrialDays defers the first charge by n days
func (b *SubscriptionBuilder) WithTrialDays(n int) *SubscriptionBuilder {
	b.trialDays = n
	return b
}

// WithCustomer attaches an existing gateway customer to the subscription
func (b *SubscriptionBuilder) WithCustomer(customerID string) *SubscriptionBuilder {
	b.customerID = customerID
	return b
}

// WithOptions passes extra gateway parameters (notes, offer_id, ...) through unchanged
func (b *SubscriptionBuilder) WithOptions(extra map[string]interface{}) *SubscriptionBuilder {
	b.extra = extra
	return b
}

// Create creates the remote subscription, captures paymentID for the plan
// amount when given, and persists the local mirror. Any remote failure
// returns before a local row is written.
func (b *SubscriptionBuilder) Create(ctx context.Context, paymentID string) (*domain.Subscription, error) {
	s := b.svc
	now := s.now()

	if b.planID == "" {
		return nil, domain.ErrValidationMissingField.WithDetail("field", "plan_id")
	}

	plan, err := s.gateway.FetchPlan(ctx, b.planID)
	if err != nil {
		observability.RecordSubscriptionOperation("create", observability.OutcomeFailed)
		return nil, fmt.Errorf("fetch plan %s: %w", b.planID, err)
	}

	req := ports.CreateSubscriptionRequest{
		PlanID:     b.planID,
		CustomerID: b.customerID,
		TotalCount: s.opts.TotalCount,
		Quantity:   1,
		Extra:      b.extra,
	}
	if b.trialDays > 0 {
		req.StartAt = timeutil.Ptr(timeutil.AddDays(now, b.trialDays))
	}

	remote, err := s.gateway.CreateSubscription(ctx, req)
	if err != nil {
		observability.RecordSubscriptionOperation("create", observability.OutcomeFailed)
		return nil, fmt.Errorf("create remote subscription: %w", err)
	}

	if paymentID != "" {
		currency := plan.Item.Currency
		if currency == "" {
			currency = s.opts.Currency
		}
		if _, err := s.capture(ctx, paymentID, plan.Item.Amount, currency); err != nil {
			observability.RecordSubscriptionOperation("create", observability.OutcomeFailed)
			return nil, err
		}
	}

	sub := &domain.Subscription{
		UserID:                 b.owner.ID,
		Name:                   b.name,
		RazorpaySubscriptionID: remote.ID,
		PlanID:                 b.planID,
		Status:                 domain.SubscriptionStatus(remote.Status),
		CreatedAt:              now,
	}
	if b.trialDays > 0 {
		sub.TrialEndsAt = timeutil.Ptr(timeutil.AddDays(now, b.trialDays))
	}

	err = s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.subRepo.Create(ctx, tx, sub)
	})
	if err != nil {
		observability.RecordSubscriptionOperation("create", observability.OutcomeFailed)
		s.logger.Error("remote subscription created but local insert failed",
			ports.String("subscription_id", remote.ID),
			ports.String("user_id", b.owner.ID),
			ports.Err(err))
		return nil, fmt.Errorf("create local subscription: %w", err)
	}

	observability.RecordSubscriptionOperation("create", observability.OutcomeSuccess)
	observability.RecordSubscriptionCreated(b.planID, b.trialDays > 0)
	s.logger.Info("subscription created",
		ports.String("subscription_id", remote.ID),
		ports.String("user_id", b.owner.ID),
		ports.String("plan_id", b.planID),
		ports.Int("trial_days", b.trialDays),
		ports.String("status", remote.Status))

	return sub, nil
}
