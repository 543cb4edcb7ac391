package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/squareboat/razorpay-cashier/internal/domain"
)

// SubscriptionRepository defines the interface for subscription persistence.
// Lookups that find nothing return an error wrapping domain.ErrSubscriptionNotFound.
type SubscriptionRepository interface {
	// Create inserts a new subscription, assigning ID and timestamps when unset
	Create(ctx context.Context, tx DBTX, subscription *domain.Subscription) error

	// GetByID retrieves a subscription by its local ID
	GetByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Subscription, error)

	// FindByRemoteID retrieves a subscription by its gateway subscription ID
	FindByRemoteID(ctx context.Context, db DBTX, razorpaySubscriptionID string) (*domain.Subscription, error)

	// FindByOwnerAndName retrieves the most recent subscription an owner holds under a name
	FindByOwnerAndName(ctx context.Context, db DBTX, userID, name string) (*domain.Subscription, error)

	// ListByOwner lists an owner's subscriptions, newest first
	ListByOwner(ctx context.Context, db DBTX, userID string) ([]*domain.Subscription, error)

	// Update persists the mutable fields and bumps UpdatedAt
	Update(ctx context.Context, tx DBTX, subscription *domain.Subscription) error
}
