package cashier

import (
	"context"
	"fmt"

	"github.com/squareboat/razorpay-cashier/internal/domain"
	"github.com/squareboat/razorpay-cashier/internal/domain/ports"
	"github.com/squareboat/razorpay-cashier/pkg/observability"
)

// orderStatusCreated is the normalized status of a freshly created order;
// the payment itself is completed by the client checkout
const orderStatusCreated = "created"

// CreateOrder creates a one-time order for owner. amount is in minor units;
// opts are merged into the request and win over the defaults.
func (s *Service) CreateOrder(ctx context.Context, owner domain.Owner, amount int64, opts map[string]interface{}) (*ports.OrderResult, error) {
	return s.placeOrder(ctx, "order", owner, amount, opts)
}

// Charge creates an order to be paid through checkout and returns its normalized result
func (s *Service) Charge(ctx context.Context, owner domain.Owner, amount int64, opts map[string]interface{}) (*ports.OrderResult, error) {
	return s.placeOrder(ctx, "charge", owner, amount, opts)
}

func (s *Service) placeOrder(ctx context.Context, kind string, owner domain.Owner, amount int64, opts map[string]interface{}) (*ports.OrderResult, error) {
	req := ports.CreateOrderRequest{
		Amount:   amount,
		Currency: s.opts.Currency,
		Receipt:  fmt.Sprintf("receipt_%s_%d", owner.ID, s.now().Unix()),
		Extra:    opts,
	}

	order, err := s.gateway.CreateOrder(ctx, req)
	if err != nil {
		observability.RecordOrder(kind, observability.OutcomeFailed, req.Currency, amount)
		s.logger.Error("create order failed",
			ports.String("kind", kind),
			ports.String("user_id", owner.ID),
			ports.Int64("amount", amount),
			ports.Err(err))
		return nil, fmt.Errorf("create order: %w", err)
	}

	currency := order.Currency
	if currency == "" {
		currency = req.Currency
	}
	observability.RecordOrder(kind, observability.OutcomeSuccess, currency, amount)
	s.logger.Info("order created",
		ports.String("kind", kind),
		ports.String("order_id", order.ID),
		ports.String("user_id", owner.ID),
		ports.Int64("amount", amount))

	return &ports.OrderResult{ID: order.ID, Status: orderStatusCreated}, nil
}

// CapturePayment fetches an authorized payment and captures amount (minor units) of it
func (s *Service) CapturePayment(ctx context.Context, paymentID string, amount int64) (*ports.RemotePayment, error) {
	return s.capture(ctx, paymentID, amount, "")
}

func (s *Service) capture(ctx context.Context, paymentID string, amount int64, currency string) (*ports.RemotePayment, error) {
	payment, err := s.gateway.FetchPayment(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("fetch payment %s: %w", paymentID, err)
	}

	if currency == "" {
		currency = payment.Currency
	}
	if currency == "" {
		currency = s.opts.Currency
	}

	captured, err := s.gateway.CapturePayment(ctx, paymentID, ports.CapturePaymentRequest{
		Amount:   amount,
		Currency: currency,
	})
	if err != nil {
		s.logger.Error("capture payment failed",
			ports.String("payment_id", paymentID),
			ports.Int64("amount", amount),
			ports.Err(err))
		return nil, fmt.Errorf("capture payment %s: %w", paymentID, err)
	}

	s.logger.Info("payment captured",
		ports.String("payment_id", paymentID),
		ports.Int64("amount", amount),
		ports.String("currency", currency))
	return captured, nil
}

// CreateCustomer registers owner with the gateway, returning the existing
// customer when one already matches
func (s *Service) CreateCustomer(ctx context.Context, owner domain.Owner) (*ports.RemoteCustomer, error) {
	customer, err := s.gateway.CreateCustomer(ctx, ports.CreateCustomerRequest{
		Name:         owner.Name,
		Email:        owner.Email,
		Contact:      owner.Phone,
		FailExisting: false,
	})
	if err != nil {
		return nil, fmt.Errorf("create customer for %s: %w", owner.ID, err)
	}
	return customer, nil
}
