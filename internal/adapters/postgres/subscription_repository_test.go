package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/squareboat/razorpay-cashier/internal/adapters/postgres"
	"github.com/squareboat/razorpay-cashier/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubscription(userID, name string) *domain.Subscription {
	return &domain.Subscription{
		UserID:                 userID,
		Name:                   name,
		RazorpaySubscriptionID: "sub_" + uuid.NewString()[:14],
		PlanID:                 "plan_basic",
		Status:                 domain.SubscriptionStatusCreated,
	}
}

func TestSubscriptionRepository_CreateAndFind(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	if pool == nil {
		return
	}
	defer cleanup()

	ctx := context.Background()
	repo := postgres.NewSubscriptionRepository(postgres.NewDBExecutor(pool))

	trialEnd := time.Now().UTC().Add(72 * time.Hour).Truncate(time.Microsecond)
	sub := newSubscription("user-1", domain.DefaultSubscriptionName)
	sub.TrialEndsAt = &trialEnd

	require.NoError(t, repo.Create(ctx, nil, sub))
	assert.NotEqual(t, uuid.Nil, sub.ID)

	t.Run("by local id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, nil, sub.ID)
		require.NoError(t, err)
		assert.Equal(t, sub.RazorpaySubscriptionID, got.RazorpaySubscriptionID)
		require.NotNil(t, got.TrialEndsAt)
		assert.True(t, trialEnd.Equal(*got.TrialEndsAt))
		assert.Nil(t, got.CanceledAt)
	})

	t.Run("by remote id", func(t *testing.T) {
		got, err := repo.FindByRemoteID(ctx, nil, sub.RazorpaySubscriptionID)
		require.NoError(t, err)
		assert.Equal(t, sub.ID, got.ID)
	})

	t.Run("by owner and name", func(t *testing.T) {
		got, err := repo.FindByOwnerAndName(ctx, nil, "user-1", domain.DefaultSubscriptionName)
		require.NoError(t, err)
		assert.Equal(t, sub.ID, got.ID)
	})

	t.Run("missing remote id", func(t *testing.T) {
		_, err := repo.FindByRemoteID(ctx, nil, "sub_missing")
		assert.ErrorIs(t, err, domain.ErrSubscriptionNotFound)
	})

	t.Run("duplicate remote id is rejected", func(t *testing.T) {
		dup := newSubscription("user-2", "other")
		dup.RazorpaySubscriptionID = sub.RazorpaySubscriptionID
		assert.Error(t, repo.Create(ctx, nil, dup))
	})
}

func TestSubscriptionRepository_Update(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	if pool == nil {
		return
	}
	defer cleanup()

	ctx := context.Background()
	db := postgres.NewDBExecutor(pool)
	repo := postgres.NewSubscriptionRepository(db)

	sub := newSubscription("user-3", domain.DefaultSubscriptionName)
	require.NoError(t, repo.Create(ctx, nil, sub))

	now := time.Now().UTC().Truncate(time.Microsecond)
	err := db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sub.MarkCancelled(now, 5)
		sub.PlanID = "plan_99"
		return repo.Update(ctx, tx, sub)
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, nil, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionStatusCancelled, got.Status)
	assert.Equal(t, "plan_99", got.PlanID)
	require.NotNil(t, got.GraceEndsAt)
	assert.True(t, now.AddDate(0, 0, 5).Equal(*got.GraceEndsAt))

	t.Run("unknown row", func(t *testing.T) {
		ghost := newSubscription("user-3", "ghost")
		ghost.ID = uuid.New()
		assert.ErrorIs(t, repo.Update(ctx, nil, ghost), domain.ErrSubscriptionNotFound)
	})
}

func TestSubscriptionRepository_ListByOwner(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	if pool == nil {
		return
	}
	defer cleanup()

	ctx := context.Background()
	repo := postgres.NewSubscriptionRepository(postgres.NewDBExecutor(pool))

	first := newSubscription("user-4", "basic")
	first.CreatedAt = time.Now().UTC().Add(-time.Hour)
	second := newSubscription("user-4", "pro")
	require.NoError(t, repo.Create(ctx, nil, first))
	require.NoError(t, repo.Create(ctx, nil, second))
	require.NoError(t, repo.Create(ctx, nil, newSubscription("user-5", "basic")))

	subs, err := repo.ListByOwner(ctx, nil, "user-4")
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, second.ID, subs[0].ID)
	assert.Equal(t, first.ID, subs[1].ID)
}
