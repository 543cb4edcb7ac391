package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/squareboat/razorpay-cashier/internal/adapters/postgres"
	"github.com/squareboat/razorpay-cashier/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceRepository_CreateAndUpdate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	if pool == nil {
		return
	}
	defer cleanup()

	ctx := context.Background()
	db := postgres.NewDBExecutor(pool)
	subs := postgres.NewSubscriptionRepository(db)
	repo := postgres.NewInvoiceRepository(db)

	sub := newSubscription("user-10", domain.DefaultSubscriptionName)
	require.NoError(t, subs.Create(ctx, nil, sub))

	notes := "first invoice"
	inv := &domain.Invoice{
		SubscriptionID:    &sub.ID,
		RazorpayInvoiceID: "inv_100",
		InvoiceNumber:     "INV-1-inv_100",
		Amount:            decimal.RequireFromString("100.50"),
		Notes:             &notes,
	}
	require.NoError(t, repo.Create(ctx, nil, inv))
	assert.Equal(t, domain.DefaultCurrency, inv.Currency)
	assert.Equal(t, domain.InvoiceStatusPending, inv.Status)

	got, err := repo.FindByRemoteID(ctx, nil, "inv_100")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("100.50").Equal(got.Amount))
	require.NotNil(t, got.Notes)
	assert.Equal(t, notes, *got.Notes)

	issued := time.Now().UTC().Truncate(time.Microsecond)
	got.Status = domain.InvoiceStatusIssued
	got.IssuedAt = &issued
	require.NoError(t, repo.Update(ctx, nil, got))

	reloaded, err := repo.GetByID(ctx, nil, got.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusIssued, reloaded.Status)
	require.NotNil(t, reloaded.IssuedAt)
	assert.True(t, issued.Equal(*reloaded.IssuedAt))

	list, err := repo.ListBySubscription(ctx, nil, sub.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = repo.GetByID(ctx, nil, uuid.New())
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}

func TestInvoiceRepository_FirstOrCreate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	if pool == nil {
		return
	}
	defer cleanup()

	ctx := context.Background()
	repo := postgres.NewInvoiceRepository(postgres.NewDBExecutor(pool))

	t.Run("without subscription", func(t *testing.T) {
		stored, created, err := repo.FirstOrCreate(ctx, nil, &domain.Invoice{
			RazorpayInvoiceID: "inv_orphan",
			InvoiceNumber:     "INV-2-inv_orphan",
			Amount:            decimal.NewFromInt(10),
		})
		require.NoError(t, err)
		assert.True(t, created)
		assert.Nil(t, stored.SubscriptionID)
	})

	t.Run("concurrent callers share one row", func(t *testing.T) {
		const workers = 8
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			ids     = map[uuid.UUID]struct{}{}
			creates int
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				stored, created, err := repo.FirstOrCreate(ctx, nil, &domain.Invoice{
					RazorpayInvoiceID: "inv_race",
					InvoiceNumber:     "INV-3-inv_race",
					Amount:            decimal.NewFromInt(25),
				})
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				defer mu.Unlock()
				ids[stored.ID] = struct{}{}
				if created {
					creates++
				}
			}()
		}
		wg.Wait()

		assert.Len(t, ids, 1)
		assert.Equal(t, 1, creates)
	})
}
