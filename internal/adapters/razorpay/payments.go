package razorpay

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/squareboat/razorpay-cashier/internal/domain/ports"
	pkgerrors "github.com/squareboat/razorpay-cashier/pkg/errors"
)

// CreateOrder implements ports.Gateway.CreateOrder
func (c *Client) CreateOrder(ctx context.Context, req ports.CreateOrderRequest) (*ports.RemoteOrder, error) {
	if req.Amount <= 0 {
		return nil, pkgerrors.NewValidationError("amount", "amount must be positive")
	}

	body := withExtra(map[string]interface{}{
		"amount":   req.Amount,
		"currency": req.Currency,
		"receipt":  req.Receipt,
	}, req.Extra)

	var resp orderResponse
	if err := c.makeRequest(ctx, "order.create", http.MethodPost, "/orders", body, &resp); err != nil {
		return nil, err
	}
	return resp.toRemote(), nil
}

// FetchPayment implements ports.Gateway.FetchPayment
func (c *Client) FetchPayment(ctx context.Context, paymentID string) (*ports.RemotePayment, error) {
	if paymentID == "" {
		return nil, pkgerrors.NewValidationError("payment_id", "payment id is required")
	}

	var resp paymentResponse
	endpoint := fmt.Sprintf("/payments/%s", url.PathEscape(paymentID))
	if err := c.makeRequest(ctx, "payment.fetch", http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toRemote(), nil
}

// CapturePayment implements ports.Gateway.CapturePayment
func (c *Client) CapturePayment(ctx context.Context, paymentID string, req ports.CapturePaymentRequest) (*ports.RemotePayment, error) {
	if paymentID == "" {
		return nil, pkgerrors.NewValidationError("payment_id", "payment id is required")
	}

	body := map[string]interface{}{"amount": req.Amount}
	if req.Currency != "" {
		body["currency"] = req.Currency
	}

	var resp paymentResponse
	endpoint := fmt.Sprintf("/payments/%s/capture", url.PathEscape(paymentID))
	if err := c.makeRequest(ctx, "payment.capture", http.MethodPost, endpoint, withExtra(body, req.Extra), &resp); err != nil {
		return nil, err
	}
	return resp.toRemote(), nil
}

// CreateCustomer implements ports.Gateway.CreateCustomer
func (c *Client) CreateCustomer(ctx context.Context, req ports.CreateCustomerRequest) (*ports.RemoteCustomer, error) {
	body := withExtra(map[string]interface{}{
		"name":          req.Name,
		"email":         req.Email,
		"contact":       req.Contact,
		"fail_existing": fmt.Sprintf("%d", boolFlag(req.FailExisting)),
	}, req.Extra)

	var resp customerResponse
	if err := c.makeRequest(ctx, "customer.create", http.MethodPost, "/customers", body, &resp); err != nil {
		return nil, err
	}
	return resp.toRemote(), nil
}

// FetchCustomer implements ports.Gateway.FetchCustomer
func (c *Client) FetchCustomer(ctx context.Context, customerID string) (*ports.RemoteCustomer, error) {
	if customerID == "" {
		return nil, pkgerrors.NewValidationError("customer_id", "customer id is required")
	}

	var resp customerResponse
	endpoint := fmt.Sprintf("/customers/%s", url.PathEscape(customerID))
	if err := c.makeRequest(ctx, "customer.fetch", http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toRemote(), nil
}
