package mocks

import (
	"context"

	"github.com/squareboat/razorpay-cashier/internal/domain/ports"
	"github.com/stretchr/testify/mock"
)

// MockGateway is a testify mock of ports.Gateway
type MockGateway struct {
	mock.Mock
}

var _ ports.Gateway = (*MockGateway)(nil)

func (m *MockGateway) CreateOrder(ctx context.Context, req ports.CreateOrderRequest) (*ports.RemoteOrder, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.RemoteOrder), args.Error(1)
}

func (m *MockGateway) FetchPayment(ctx context.Context, paymentID string) (*ports.RemotePayment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.RemotePayment), args.Error(1)
}

func (m *MockGateway) CapturePayment(ctx context.Context, paymentID string, req ports.CapturePaymentRequest) (*ports.RemotePayment, error) {
	args := m.Called(ctx, paymentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.RemotePayment), args.Error(1)
}

func (m *MockGateway) FetchPlan(ctx context.Context, planID string) (*ports.RemotePlan, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.RemotePlan), args.Error(1)
}

func (m *MockGateway) CreateSubscription(ctx context.Context, req ports.CreateSubscriptionRequest) (*ports.RemoteSubscription, error) {
	args := m.Called(ctx, req)
	return subscriptionResult(args)
}

func (m *MockGateway) FetchSubscription(ctx context.Context, subscriptionID string) (*ports.RemoteSubscription, error) {
	args := m.Called(ctx, subscriptionID)
	return subscriptionResult(args)
}

func (m *MockGateway) PauseSubscription(ctx context.Context, subscriptionID string) (*ports.RemoteSubscription, error) {
	args := m.Called(ctx, subscriptionID)
	return subscriptionResult(args)
}

func (m *MockGateway) ResumeSubscription(ctx context.Context, subscriptionID string) (*ports.RemoteSubscription, error) {
	args := m.Called(ctx, subscriptionID)
	return subscriptionResult(args)
}

func (m *MockGateway) CancelSubscription(ctx context.Context, subscriptionID string, atCycleEnd bool) (*ports.RemoteSubscription, error) {
	args := m.Called(ctx, subscriptionID, atCycleEnd)
	return subscriptionResult(args)
}

func (m *MockGateway) UpdateSubscription(ctx context.Context, subscriptionID string, req ports.UpdateSubscriptionRequest) (*ports.RemoteSubscription, error) {
	args := m.Called(ctx, subscriptionID, req)
	return subscriptionResult(args)
}

func (m *MockGateway) CreateCustomer(ctx context.Context, req ports.CreateCustomerRequest) (*ports.RemoteCustomer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.RemoteCustomer), args.Error(1)
}

func (m *MockGateway) FetchCustomer(ctx context.Context, customerID string) (*ports.RemoteCustomer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.RemoteCustomer), args.Error(1)
}

func (m *MockGateway) CreateInvoice(ctx context.Context, req ports.CreateRemoteInvoiceRequest) (*ports.RemoteInvoice, error) {
	args := m.Called(ctx, req)
	return invoiceResult(args)
}

func (m *MockGateway) FetchInvoice(ctx context.Context, invoiceID string) (*ports.RemoteInvoice, error) {
	args := m.Called(ctx, invoiceID)
	return invoiceResult(args)
}

func (m *MockGateway) IssueInvoice(ctx context.Context, invoiceID string) (*ports.RemoteInvoice, error) {
	args := m.Called(ctx, invoiceID)
	return invoiceResult(args)
}

func (m *MockGateway) CancelInvoice(ctx context.Context, invoiceID string) (*ports.RemoteInvoice, error) {
	args := m.Called(ctx, invoiceID)
	return invoiceResult(args)
}

func subscriptionResult(args mock.Arguments) (*ports.RemoteSubscription, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.RemoteSubscription), args.Error(1)
}

func invoiceResult(args mock.Arguments) (*ports.RemoteInvoice, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.RemoteInvoice), args.Error(1)
}
