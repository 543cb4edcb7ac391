package cashier

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/squareboat/razorpay-cashier/internal/domain"
	"github.com/squareboat/razorpay-cashier/internal/domain/ports"
	"github.com/squareboat/razorpay-cashier/pkg/timeutil"
)

// Options holds the billing defaults applied when a caller does not supply them
type Options struct {
	Currency          string
	TotalCount        int
	InvoiceExpiryDays int
}

// DefaultOptions returns INR billing with 12 cycles and 30-day invoice expiry
func DefaultOptions() Options {
	return Options{
		Currency:          domain.DefaultCurrency,
		TotalCount:        12,
		InvoiceExpiryDays: 30,
	}
}

// Service implements ports.CashierService.
// The gateway is treated as the source of truth: every lifecycle call re-reads
// the remote subscription before mutating it, then mirrors the result locally.
type Service struct {
	db      ports.DBPort
	subRepo ports.SubscriptionRepository
	invRepo ports.InvoiceRepository
	gateway ports.Gateway
	logger  ports.Logger
	now     timeutil.Clock
	opts    Options
}

var _ ports.CashierService = (*Service)(nil)

// NewService creates a new cashier service
func NewService(
	db ports.DBPort,
	subRepo ports.SubscriptionRepository,
	invRepo ports.InvoiceRepository,
	gateway ports.Gateway,
	opts Options,
	logger ports.Logger,
) *Service {
	defaults := DefaultOptions()
	if opts.Currency == "" {
		opts.Currency = defaults.Currency
	}
	if opts.TotalCount <= 0 {
		opts.TotalCount = defaults.TotalCount
	}
	if opts.InvoiceExpiryDays <= 0 {
		opts.InvoiceExpiryDays = defaults.InvoiceExpiryDays
	}

	return &Service{
		db:      db,
		subRepo: subRepo,
		invRepo: invRepo,
		gateway: gateway,
		logger:  logger,
		now:     timeutil.Now,
		opts:    opts,
	}
}

// WithClock replaces the time source, used by tests to pin "now"
func (s *Service) WithClock(clock timeutil.Clock) *Service {
	s.now = clock
	return s
}

// findLocalSubscription returns the local mirror of a remote subscription,
// or nil when no row exists
func (s *Service) findLocalSubscription(ctx context.Context, remoteID string) (*domain.Subscription, error) {
	sub, err := s.subRepo.FindByRemoteID(ctx, nil, remoteID)
	if err != nil {
		if errors.Is(err, domain.ErrSubscriptionNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find local subscription: %w", err)
	}
	return sub, nil
}

// saveSubscription persists a mutated subscription in its own transaction
func (s *Service) saveSubscription(ctx context.Context, sub *domain.Subscription) error {
	return s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.subRepo.Update(ctx, tx, sub); err != nil {
			return fmt.Errorf("update subscription: %w", err)
		}
		return nil
	})
}
