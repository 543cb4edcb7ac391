package cashier

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/squareboat/razorpay-cashier/internal/domain/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	opts := map[string]interface{}{"notes": map[string]interface{}{"sku": "A1"}}

	f.gateway.On("CreateOrder", mock.Anything, ports.CreateOrderRequest{
		Amount:   50000,
		Currency: "INR",
		Receipt:  fmt.Sprintf("receipt_user-1_%d", fixedNow.Unix()),
		Extra:    opts,
	}).Return(&ports.RemoteOrder{ID: "order_1", Status: "created", Currency: "INR"}, nil).Twice()

	result, err := f.svc.CreateOrder(ctx, owner, 50000, opts)
	require.NoError(t, err)
	assert.Equal(t, &ports.OrderResult{ID: "order_1", Status: "created"}, result)

	result, err = f.svc.Charge(ctx, owner, 50000, opts)
	require.NoError(t, err)
	assert.Equal(t, "order_1", result.ID)
}

func TestCreateOrder_GatewayFailure(t *testing.T) {
	f := newFixture(t)
	f.gateway.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, gatewayError(http.StatusBadRequest))

	result, err := f.svc.CreateOrder(context.Background(), owner, 0, nil)
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestCapturePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("uses payment currency", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.On("FetchPayment", mock.Anything, "pay_1").
			Return(&ports.RemotePayment{ID: "pay_1", Currency: "USD", Status: "authorized"}, nil)
		f.gateway.On("CapturePayment", mock.Anything, "pay_1", ports.CapturePaymentRequest{Amount: 1200, Currency: "USD"}).
			Return(&ports.RemotePayment{ID: "pay_1", Status: "captured"}, nil)

		payment, err := f.svc.CapturePayment(ctx, "pay_1", 1200)
		require.NoError(t, err)
		assert.Equal(t, "captured", payment.Status)
	})

	t.Run("falls back to configured currency", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.On("FetchPayment", mock.Anything, "pay_2").Return(&ports.RemotePayment{ID: "pay_2"}, nil)
		f.gateway.On("CapturePayment", mock.Anything, "pay_2", ports.CapturePaymentRequest{Amount: 1200, Currency: "INR"}).
			Return(&ports.RemotePayment{ID: "pay_2", Status: "captured"}, nil)

		_, err := f.svc.CapturePayment(ctx, "pay_2", 1200)
		require.NoError(t, err)
	})

	t.Run("unknown payment is not captured", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.On("FetchPayment", mock.Anything, "pay_x").Return(nil, gatewayError(http.StatusBadRequest))

		_, err := f.svc.CapturePayment(ctx, "pay_x", 1200)
		require.Error(t, err)
		f.gateway.AssertNotCalled(t, "CapturePayment", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCreateCustomer(t *testing.T) {
	f := newFixture(t)
	f.gateway.On("CreateCustomer", mock.Anything, ports.CreateCustomerRequest{
		Name:    "Asha",
		Email:   "asha@example.com",
		Contact: "+919800000000",
	}).Return(&ports.RemoteCustomer{ID: "cust_1"}, nil)

	customer, err := f.svc.CreateCustomer(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, "cust_1", customer.ID)
}
