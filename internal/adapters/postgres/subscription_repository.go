package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/squareboat/razorpay-cashier/internal/domain"
	"github.com/squareboat/razorpay-cashier/internal/domain/ports"
	"github.com/squareboat/razorpay-cashier/pkg/timeutil"
)

const subscriptionColumns = `id, user_id, name, razorpay_subscription_id, plan_id, status,
	is_paused, paused_at, resumed_at, canceled_at, grace_ends_at, trial_ends_at,
	created_at, updated_at`

// SubscriptionRepository implements ports.SubscriptionRepository with pgx
type SubscriptionRepository struct {
	pool *pgxpool.Pool
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db ports.DBPort) *SubscriptionRepository {
	return &SubscriptionRepository{pool: db.GetDB()}
}

// Create inserts a new subscription
func (r *SubscriptionRepository) Create(ctx context.Context, tx ports.DBTX, sub *domain.Subscription) error {
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	now := timeutil.Now()
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = now
	}
	sub.UpdatedAt = sub.CreatedAt

	_, err := executor(r.pool, tx).Exec(ctx, `
		INSERT INTO subscriptions (`+subscriptionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		sub.ID,
		sub.UserID,
		nullText(sub.Name),
		sub.RazorpaySubscriptionID,
		sub.PlanID,
		string(sub.Status),
		sub.IsPaused,
		sub.PausedAt,
		sub.ResumedAt,
		sub.CanceledAt,
		sub.GraceEndsAt,
		sub.TrialEndsAt,
		sub.CreatedAt,
		sub.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create subscription: %w", err)
	}
	return nil
}

// GetByID retrieves a subscription by its local ID
func (r *SubscriptionRepository) GetByID(ctx context.Context, db ports.DBTX, id uuid.UUID) (*domain.Subscription, error) {
	row := executor(r.pool, db).QueryRow(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = $1`, id)
	sub, err := scanSubscription(row)
	if err != nil {
		return nil, notFound(err, domain.ErrSubscriptionNotFound, "get subscription %s", id)
	}
	return sub, nil
}

// FindByRemoteID retrieves a subscription by its gateway subscription ID
func (r *SubscriptionRepository) FindByRemoteID(ctx context.Context, db ports.DBTX, razorpaySubscriptionID string) (*domain.Subscription, error) {
	row := executor(r.pool, db).QueryRow(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE razorpay_subscription_id = $1`,
		razorpaySubscriptionID)
	sub, err := scanSubscription(row)
	if err != nil {
		return nil, notFound(err, domain.ErrSubscriptionNotFound, "find subscription %s", razorpaySubscriptionID)
	}
	return sub, nil
}

// FindByOwnerAndName retrieves the most recent subscription an owner holds under a name
func (r *SubscriptionRepository) FindByOwnerAndName(ctx context.Context, db ports.DBTX, userID, name string) (*domain.Subscription, error) {
	row := executor(r.pool, db).QueryRow(ctx, `
		SELECT `+subscriptionColumns+` FROM subscriptions
		WHERE user_id = $1 AND name = $2
		ORDER BY created_at DESC
		LIMIT 1`, userID, name)
	sub, err := scanSubscription(row)
	if err != nil {
		return nil, notFound(err, domain.ErrSubscriptionNotFound, "find subscription %q for owner %s", name, userID)
	}
	return sub, nil
}

// ListByOwner lists an owner's subscriptions, newest first
func (r *SubscriptionRepository) ListByOwner(ctx context.Context, db ports.DBTX, userID string) ([]*domain.Subscription, error) {
	rows, err := executor(r.pool, db).Query(ctx, `
		SELECT `+subscriptionColumns+` FROM subscriptions
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions for owner %s: %w", userID, err)
	}
	defer rows.Close()

	var subs []*domain.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list subscriptions for owner %s: %w", userID, err)
	}
	return subs, nil
}

// Update persists the mutable fields and bumps UpdatedAt
func (r *SubscriptionRepository) Update(ctx context.Context, tx ports.DBTX, sub *domain.Subscription) error {
	sub.UpdatedAt = timeutil.Now()

	tag, err := executor(r.pool, tx).Exec(ctx, `
		UPDATE subscriptions SET
			plan_id = $2,
			status = $3,
			is_paused = $4,
			paused_at = $5,
			resumed_at = $6,
			canceled_at = $7,
			grace_ends_at = $8,
			trial_ends_at = $9,
			updated_at = $10
		WHERE id = $1`,
		sub.ID,
		sub.PlanID,
		string(sub.Status),
		sub.IsPaused,
		sub.PausedAt,
		sub.ResumedAt,
		sub.CanceledAt,
		sub.GraceEndsAt,
		sub.TrialEndsAt,
		sub.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update subscription %s: %w", sub.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update subscription %s: %w", sub.ID, domain.ErrSubscriptionNotFound)
	}
	return nil
}

func scanSubscription(row pgx.Row) (*domain.Subscription, error) {
	var (
		sub    domain.Subscription
		name   pgtype.Text
		status string
	)
	err := row.Scan(
		&sub.ID,
		&sub.UserID,
		&name,
		&sub.RazorpaySubscriptionID,
		&sub.PlanID,
		&status,
		&sub.IsPaused,
		&sub.PausedAt,
		&sub.ResumedAt,
		&sub.CanceledAt,
		&sub.GraceEndsAt,
		&sub.TrialEndsAt,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	sub.Name = name.String
	sub.Status = domain.SubscriptionStatus(status)
	return &sub, nil
}
