package cashier

import (
	"context"
	"errors"
	"fmt"

	"github.com/squareboat/razorpay-cashier/internal/domain"
	"github.com/squareboat/razorpay-cashier/internal/domain/ports"
)

// Billable gives an application owner its billing operations.
// Named operations resolve the owner's subscription by name and forward its
// gateway id to the Service.
type Billable struct {
	svc   *Service
	owner domain.Owner
}

// NewBillable binds owner to svc
func NewBillable(owner domain.Owner, svc *Service) *Billable {
	return &Billable{owner: owner, svc: svc}
}

// Owner returns the bound owner
func (b *Billable) Owner() domain.Owner {
	return b.owner
}

// CreateOrder creates a one-time order of amount minor units
func (b *Billable) CreateOrder(ctx context.Context, amount int64, opts map[string]interface{}) (*ports.OrderResult, error) {
	return b.svc.CreateOrder(ctx, b.owner, amount, opts)
}

// Charge creates an order of amount minor units to be paid through checkout
func (b *Billable) Charge(ctx context.Context, amount int64, opts map[string]interface{}) (*ports.OrderResult, error) {
	return b.svc.Charge(ctx, b.owner, amount, opts)
}

// CreateCustomer registers the owner as a gateway customer
func (b *Billable) CreateCustomer(ctx context.Context) (*ports.RemoteCustomer, error) {
	return b.svc.CreateCustomer(ctx, b.owner)
}

// NewSubscription starts building a subscription to planID under name
func (b *Billable) NewSubscription(name, planID string) *SubscriptionBuilder {
	return b.svc.NewSubscription(b.owner, name, planID)
}

// Subscription returns the owner's most recent subscription under name, or nil
func (b *Billable) Subscription(ctx context.Context, name string) (*domain.Subscription, error) {
	if name == "" {
		name = domain.DefaultSubscriptionName
	}
	sub, err := b.svc.subRepo.FindByOwnerAndName(ctx, nil, b.owner.ID, name)
	if err != nil {
		if errors.Is(err, domain.ErrSubscriptionNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find subscription %q: %w", name, err)
	}
	return sub, nil
}

// Subscriptions lists all of the owner's subscriptions, newest first
func (b *Billable) Subscriptions(ctx context.Context) ([]*domain.Subscription, error) {
	subs, err := b.svc.subRepo.ListByOwner(ctx, nil, b.owner.ID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return subs, nil
}

// Subscribed reports whether the owner holds a valid subscription under name
func (b *Billable) Subscribed(ctx context.Context, name string) (bool, error) {
	sub, err := b.Subscription(ctx, name)
	if err != nil {
		return false, err
	}
	return sub != nil && sub.Valid(), nil
}

// PauseSubscription pauses the named subscription
func (b *Billable) PauseSubscription(ctx context.Context, name string) (bool, error) {
	remoteID, err := b.remoteID(ctx, name)
	if err != nil {
		return false, err
	}
	return b.svc.PauseSubscription(ctx, remoteID)
}

// ResumeSubscription resumes the named subscription
func (b *Billable) ResumeSubscription(ctx context.Context, name string) (bool, error) {
	remoteID, err := b.remoteID(ctx, name)
	if err != nil {
		return false, err
	}
	return b.svc.ResumeSubscription(ctx, remoteID)
}

// CancelSubscription cancels the named subscription with graceDays of grace
func (b *Billable) CancelSubscription(ctx context.Context, name string, graceDays int) (bool, error) {
	remoteID, err := b.remoteID(ctx, name)
	if err != nil {
		return false, err
	}
	return b.svc.CancelSubscription(ctx, remoteID, graceDays)
}

// SwapPlan moves the named subscription to planID
func (b *Billable) SwapPlan(ctx context.Context, name, planID string) (bool, error) {
	remoteID, err := b.remoteID(ctx, name)
	if err != nil {
		return false, err
	}
	return b.svc.SwapPlan(ctx, remoteID, planID)
}

// SyncTrialStatus syncs the trial status of the named subscription
func (b *Billable) SyncTrialStatus(ctx context.Context, name string) (*domain.Subscription, error) {
	remoteID, err := b.remoteID(ctx, name)
	if err != nil {
		return nil, err
	}
	return b.svc.SyncTrialStatus(ctx, remoteID)
}

func (b *Billable) remoteID(ctx context.Context, name string) (string, error) {
	sub, err := b.Subscription(ctx, name)
	if err != nil {
		return "", err
	}
	if sub == nil {
		return "", fmt.Errorf("subscription %q for owner %s: %w", name, b.owner.ID, domain.ErrSubscriptionNotFound)
	}
	return sub.RazorpaySubscriptionID, nil
}
