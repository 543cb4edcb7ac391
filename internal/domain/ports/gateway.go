package ports

import (
	"context"
	"time"
)

// RemoteOrder is an order as reported by the gateway. Amounts are in minor units.
type RemoteOrder struct {
	CreatedAt  *time.Time `json:"created_at"`
	ID         string     `json:"id"`
	Currency   string     `json:"currency"`
	Receipt    string     `json:"receipt"`
	Status     string     `json:"status"`
	Amount     int64      `json:"amount"`
	AmountPaid int64      `json:"amount_paid"`
	AmountDue  int64      `json:"amount_due"`
	Attempts   int        `json:"attempts"`
}

// RemotePayment is a payment as reported by the gateway
type RemotePayment struct {
	CreatedAt  *time.Time `json:"created_at"`
	ID         string     `json:"id"`
	OrderID    string     `json:"order_id"`
	InvoiceID  string     `json:"invoice_id"`
	CustomerID string     `json:"customer_id"`
	Currency   string     `json:"currency"`
	Status     string     `json:"status"`
	Method     string     `json:"method"`
	Email      string     `json:"email"`
	Contact    string     `json:"contact"`
	Amount     int64      `json:"amount"`
	Captured   bool       `json:"captured"`
}

// PlanItem is the billable item attached to a plan
type PlanItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

// RemotePlan is a recurring plan as reported by the gateway
type RemotePlan struct {
	CreatedAt *time.Time `json:"created_at"`
	ID        string     `json:"id"`
	Period    string     `json:"period"`
	Item      PlanItem   `json:"item"`
	Interval  int        `json:"interval"`
}

// RemoteSubscription is a subscription as reported by the gateway
type RemoteSubscription struct {
	CreatedAt      *time.Time `json:"created_at"`
	StartAt        *time.Time `json:"start_at"`
	EndAt          *time.Time `json:"end_at"`
	ChargeAt       *time.Time `json:"charge_at"`
	CurrentStart   *time.Time `json:"current_start"`
	CurrentEnd     *time.Time `json:"current_end"`
	ID             string     `json:"id"`
	PlanID         string     `json:"plan_id"`
	CustomerID     string     `json:"customer_id"`
	Status         string     `json:"status"`
	ShortURL       string     `json:"short_url"`
	Quantity       int        `json:"quantity"`
	TotalCount     int        `json:"total_count"`
	PaidCount      int        `json:"paid_count"`
	RemainingCount int        `json:"remaining_count"`
}

// RemoteCustomer is a customer as reported by the gateway
type RemoteCustomer struct {
	CreatedAt *time.Time `json:"created_at"`
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Contact   string     `json:"contact"`
}

// RemoteLineItem is one line of a gateway invoice. Amount is in minor units.
type RemoteLineItem struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
	Quantity int    `json:"quantity"`
}

// RemoteInvoice is an invoice as reported by the gateway.
// IssuedAt carries the gateway's "date" field.
type RemoteInvoice struct {
	ExpireBy       *time.Time       `json:"expire_by"`
	IssuedAt       *time.Time       `json:"issued_at"`
	PaidAt         *time.Time       `json:"paid_at"`
	CancelledAt    *time.Time       `json:"cancelled_at"`
	CreatedAt      *time.Time       `json:"created_at"`
	ID             string           `json:"id"`
	Type           string           `json:"type"`
	Description    string           `json:"description"`
	CustomerID     string           `json:"customer_id"`
	SubscriptionID string           `json:"subscription_id"`
	OrderID        string           `json:"order_id"`
	PaymentID      string           `json:"payment_id"`
	Currency       string           `json:"currency"`
	Status         string           `json:"status"`
	ShortURL       string           `json:"short_url"`
	LineItems      []RemoteLineItem `json:"line_items"`
	Amount         int64            `json:"amount"`
	AmountPaid     int64            `json:"amount_paid"`
	AmountDue      int64            `json:"amount_due"`
}

// CreateOrderRequest contains parameters for creating an order.
// Extra keys are merged into the request body and win over the typed fields.
type CreateOrderRequest struct {
	Extra    map[string]interface{}
	Currency string
	Receipt  string
	Amount   int64
}

// CapturePaymentRequest contains parameters for capturing an authorized payment
type CapturePaymentRequest struct {
	Extra    map[string]interface{}
	Currency string
	Amount   int64
}

// CreateSubscriptionRequest contains parameters for creating a subscription.
// StartAt defers the first charge (used for trials).
type CreateSubscriptionRequest struct {
	Extra      map[string]interface{}
	StartAt    *time.Time
	PlanID     string
	CustomerID string
	TotalCount int
	Quantity   int
}

// UpdateSubscriptionRequest contains the fields to change on a subscription
type UpdateSubscriptionRequest struct {
	Extra    map[string]interface{}
	Quantity *int
	PlanID   string
}

// CreateCustomerRequest contains parameters for creating a customer.
// With FailExisting false the gateway returns the existing customer instead of failing.
type CreateCustomerRequest struct {
	Extra        map[string]interface{}
	Name         string
	Email        string
	Contact      string
	FailExisting bool
}

// CreateRemoteInvoiceRequest contains parameters for creating a gateway invoice
type CreateRemoteInvoiceRequest struct {
	Extra          map[string]interface{}
	ExpireBy       *time.Time
	CustomerID     string
	SubscriptionID string
	Description    string
	LineItems      []RemoteLineItem
	SMSNotify      bool
	EmailNotify    bool
}

// Gateway is the typed facade over the payment gateway API.
// Each method performs exactly one remote call and never retries.
type Gateway interface {
	// CreateOrder creates a one-time order
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*RemoteOrder, error)

	// FetchPayment retrieves a payment
	FetchPayment(ctx context.Context, paymentID string) (*RemotePayment, error)

	// CapturePayment captures an authorized payment
	CapturePayment(ctx context.Context, paymentID string, req CapturePaymentRequest) (*RemotePayment, error)

	// FetchPlan retrieves a plan including its item amount
	FetchPlan(ctx context.Context, planID string) (*RemotePlan, error)

	// CreateSubscription creates a subscription against a plan
	CreateSubscription(ctx context.Context, req CreateSubscriptionRequest) (*RemoteSubscription, error)

	// FetchSubscription retrieves a subscription
	FetchSubscription(ctx context.Context, subscriptionID string) (*RemoteSubscription, error)

	// PauseSubscription pauses billing immediately
	PauseSubscription(ctx context.Context, subscriptionID string) (*RemoteSubscription, error)

	// ResumeSubscription resumes billing immediately
	ResumeSubscription(ctx context.Context, subscriptionID string) (*RemoteSubscription, error)

	// CancelSubscription cancels a subscription, immediately or at the end of the current cycle
	CancelSubscription(ctx context.Context, subscriptionID string, atCycleEnd bool) (*RemoteSubscription, error)

	// UpdateSubscription changes plan or quantity of a subscription
	UpdateSubscription(ctx context.Context, subscriptionID string, req UpdateSubscriptionRequest) (*RemoteSubscription, error)

	// CreateCustomer creates (or returns the existing) customer
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*RemoteCustomer, error)

	// FetchCustomer retrieves a customer
	FetchCustomer(ctx context.Context, customerID string) (*RemoteCustomer, error)

	// CreateInvoice creates an invoice
	CreateInvoice(ctx context.Context, req CreateRemoteInvoiceRequest) (*RemoteInvoice, error)

	// FetchInvoice retrieves an invoice
	FetchInvoice(ctx context.Context, invoiceID string) (*RemoteInvoice, error)

	// IssueInvoice issues a draft invoice
	IssueInvoice(ctx context.Context, invoiceID string) (*RemoteInvoice, error)

	// CancelInvoice cancels an invoice
	CancelInvoice(ctx context.Context, invoiceID string) (*RemoteInvoice, error)
}
