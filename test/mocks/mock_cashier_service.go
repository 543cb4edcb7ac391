package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/squareboat/razorpay-cashier/internal/domain"
	"github.com/squareboat/razorpay-cashier/internal/domain/ports"
	"github.com/stretchr/testify/mock"
)

// MockCashierService is a testify mock of ports.CashierService
type MockCashierService struct {
	mock.Mock
}

var _ ports.CashierService = (*MockCashierService)(nil)

func (m *MockCashierService) CreateOrder(ctx context.Context, owner domain.Owner, amount int64, opts map[string]interface{}) (*ports.OrderResult, error) {
	args := m.Called(ctx, owner, amount, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.OrderResult), args.Error(1)
}

func (m *MockCashierService) Charge(ctx context.Context, owner domain.Owner, amount int64, opts map[string]interface{}) (*ports.OrderResult, error) {
	args := m.Called(ctx, owner, amount, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.OrderResult), args.Error(1)
}

func (m *MockCashierService) CapturePayment(ctx context.Context, paymentID string, amount int64) (*ports.RemotePayment, error) {
	args := m.Called(ctx, paymentID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.RemotePayment), args.Error(1)
}

func (m *MockCashierService) CreateCustomer(ctx context.Context, owner domain.Owner) (*ports.RemoteCustomer, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.RemoteCustomer), args.Error(1)
}

func (m *MockCashierService) PauseSubscription(ctx context.Context, subscriptionID string) (bool, error) {
	args := m.Called(ctx, subscriptionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCashierService) ResumeSubscription(ctx context.Context, subscriptionID string) (bool, error) {
	args := m.Called(ctx, subscriptionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCashierService) CancelSubscription(ctx context.Context, subscriptionID string, graceDays int) (bool, error) {
	args := m.Called(ctx, subscriptionID, graceDays)
	return args.Bool(0), args.Error(1)
}

func (m *MockCashierService) SwapPlan(ctx context.Context, subscriptionID, newPlanID string) (bool, error) {
	args := m.Called(ctx, subscriptionID, newPlanID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCashierService) SyncTrialStatus(ctx context.Context, subscriptionID string) (*domain.Subscription, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockCashierService) EndTrial(ctx context.Context, subscriptionID string) (bool, error) {
	args := m.Called(ctx, subscriptionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCashierService) CreateInvoice(ctx context.Context, req ports.CreateInvoiceRequest) *ports.InvoiceResult {
	args := m.Called(ctx, req)
	return args.Get(0).(*ports.InvoiceResult)
}

func (m *MockCashierService) FetchInvoice(ctx context.Context, invoiceID string) *ports.InvoiceResult {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).(*ports.InvoiceResult)
}

func (m *MockCashierService) TransitionInvoice(ctx context.Context, invoiceID string, action domain.InvoiceAction) *ports.InvoiceResult {
	args := m.Called(ctx, invoiceID, action)
	return args.Get(0).(*ports.InvoiceResult)
}

func (m *MockCashierService) ListInvoices(ctx context.Context, subscriptionID uuid.UUID) ([]*domain.Invoice, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Invoice), args.Error(1)
}
