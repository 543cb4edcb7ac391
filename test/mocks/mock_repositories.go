package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/squareboat/razorpay-cashier/internal/domain"
	"github.com/squareboat/razorpay-cashier/internal/domain/ports"
	"github.com/stretchr/testify/mock"
)

// MockDBPort mocks the database port; transactions run fn with a nil tx
type MockDBPort struct {
	mock.Mock
}

func (m *MockDBPort) GetDB() *pgxpool.Pool {
	return nil
}

func (m *MockDBPort) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return fn(ctx, nil)
}

func (m *MockDBPort) WithReadOnlyTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return fn(ctx, nil)
}

// MockSubscriptionRepository mocks ports.SubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

var _ ports.SubscriptionRepository = (*MockSubscriptionRepository)(nil)

func (m *MockSubscriptionRepository) Create(ctx context.Context, tx ports.DBTX, sub *domain.Subscription) error {
	args := m.Called(ctx, tx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) GetByID(ctx context.Context, db ports.DBTX, id uuid.UUID) (*domain.Subscription, error) {
	args := m.Called(ctx, db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindByRemoteID(ctx context.Context, db ports.DBTX, remoteID string) (*domain.Subscription, error) {
	args := m.Called(ctx, db, remoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindByOwnerAndName(ctx context.Context, db ports.DBTX, userID, name string) (*domain.Subscription, error) {
	args := m.Called(ctx, db, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) ListByOwner(ctx context.Context, db ports.DBTX, userID string) ([]*domain.Subscription, error) {
	args := m.Called(ctx, db, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) Update(ctx context.Context, tx ports.DBTX, sub *domain.Subscription) error {
	args := m.Called(ctx, tx, sub)
	return args.Error(0)
}

// MockInvoiceRepository mocks ports.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

var _ ports.InvoiceRepository = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) Create(ctx context.Context, tx ports.DBTX, invoice *domain.Invoice) error {
	args := m.Called(ctx, tx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, db ports.DBTX, id uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByRemoteID(ctx context.Context, db ports.DBTX, remoteID string) (*domain.Invoice, error) {
	args := m.Called(ctx, db, remoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FirstOrCreate(ctx context.Context, tx ports.DBTX, invoice *domain.Invoice) (*domain.Invoice, bool, error) {
	args := m.Called(ctx, tx, invoice)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Invoice), args.Bool(1), args.Error(2)
}

func (m *MockInvoiceRepository) ListBySubscription(ctx context.Context, db ports.DBTX, subscriptionID uuid.UUID) ([]*domain.Invoice, error) {
	args := m.Called(ctx, db, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Update(ctx context.Context, tx ports.DBTX, invoice *domain.Invoice) error {
	args := m.Called(ctx, tx, invoice)
	return args.Error(0)
}
