package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/squareboat/razorpay-cashier/internal/domain"
)

// LineItem is a caller-supplied invoice line. Amount is in major units.
type LineItem struct {
	Amount   decimal.Decimal `json:"amount"`
	Name     string          `json:"name,omitempty"`
	Currency string          `json:"currency,omitempty"`
	Quantity int             `json:"quantity,omitempty"`
}

// CustomerRequest carries the details used to create a gateway customer on the fly
type CustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// CreateInvoiceRequest contains parameters for creating an invoice for a subscription.
// The customer is resolved from CustomerID, then from the remote subscription, then
// created from Customer.
type CreateInvoiceRequest struct {
	Customer       *CustomerRequest `json:"customer,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
	SubscriptionID string           `json:"subscription_id"`
	CustomerID     string           `json:"customer_id,omitempty"`
	LineItems      []LineItem       `json:"line_items,omitempty"`
}

// InvoiceResult reports the outcome of an invoice operation.
// Failures are reported through Success and Message, never as an error.
type InvoiceResult struct {
	RemoteInvoice  *RemoteInvoice  `json:"razorpay_invoice,omitempty"`
	Invoice        *domain.Invoice `json:"local_invoice,omitempty"`
	Message        string          `json:"message,omitempty"`
	SubscriptionID string          `json:"subscription_id,omitempty"`
	InvoiceID      string          `json:"invoice_id,omitempty"`
	Success        bool            `json:"success"`
}

// OrderResult is the normalized result of an order or charge
type OrderResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// CashierService defines the billing operations exposed to transports
type CashierService interface {
	// Orders and payments
	CreateOrder(ctx context.Context, owner domain.Owner, amount int64, opts map[string]interface{}) (*OrderResult, error)
	Charge(ctx context.Context, owner domain.Owner, amount int64, opts map[string]interface{}) (*OrderResult, error)
	CapturePayment(ctx context.Context, paymentID string, amount int64) (*RemotePayment, error)
	CreateCustomer(ctx context.Context, owner domain.Owner) (*RemoteCustomer, error)

	// Subscription lifecycle, keyed by gateway subscription ID
	PauseSubscription(ctx context.Context, subscriptionID string) (bool, error)
	ResumeSubscription(ctx context.Context, subscriptionID string) (bool, error)
	CancelSubscription(ctx context.Context, subscriptionID string, graceDays int) (bool, error)
	SwapPlan(ctx context.Context, subscriptionID, newPlanID string) (bool, error)
	SyncTrialStatus(ctx context.Context, subscriptionID string) (*domain.Subscription, error)
	EndTrial(ctx context.Context, subscriptionID string) (bool, error)

	// Invoices
	CreateInvoice(ctx context.Context, req CreateInvoiceRequest) *InvoiceResult
	FetchInvoice(ctx context.Context, invoiceID string) *InvoiceResult
	TransitionInvoice(ctx context.Context, invoiceID string, action domain.InvoiceAction) *InvoiceResult
	ListInvoices(ctx context.Context, subscriptionID uuid.UUID) ([]*domain.Invoice, error)
}
