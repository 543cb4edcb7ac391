package razorpay

import (
	"time"

	"github.com/squareboat/razorpay-cashier/internal/domain/ports"
	"github.com/squareboat/razorpay-cashier/pkg/timeutil"
)

// Wire representations of Razorpay entities. Timestamps are unix seconds and
// may be null; amounts are minor units.

type orderResponse struct {
	ID         string `json:"id"`
	Currency   string `json:"currency"`
	Receipt    string `json:"receipt"`
	Status     string `json:"status"`
	Amount     int64  `json:"amount"`
	AmountPaid int64  `json:"amount_paid"`
	AmountDue  int64  `json:"amount_due"`
	Attempts   int    `json:"attempts"`
	CreatedAt  *int64 `json:"created_at"`
}

type paymentResponse struct {
	ID         string `json:"id"`
	OrderID    string `json:"order_id"`
	InvoiceID  string `json:"invoice_id"`
	CustomerID string `json:"customer_id"`
	Currency   string `json:"currency"`
	Status     string `json:"status"`
	Method     string `json:"method"`
	Email      string `json:"email"`
	Contact    string `json:"contact"`
	Amount     int64  `json:"amount"`
	Captured   bool   `json:"captured"`
	CreatedAt  *int64 `json:"created_at"`
}

type planResponse struct {
	ID       string `json:"id"`
	Period   string `json:"period"`
	Interval int    `json:"interval"`
	Item     struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Currency string `json:"currency"`
		Amount   int64  `json:"amount"`
	} `json:"item"`
	CreatedAt *int64 `json:"created_at"`
}

type subscriptionResponse struct {
	ID             string `json:"id"`
	PlanID         string `json:"plan_id"`
	CustomerID     string `json:"customer_id"`
	Status         string `json:"status"`
	ShortURL       string `json:"short_url"`
	Quantity       int    `json:"quantity"`
	TotalCount     int    `json:"total_count"`
	PaidCount      int    `json:"paid_count"`
	RemainingCount int    `json:"remaining_count"`
	StartAt        *int64 `json:"start_at"`
	EndAt          *int64 `json:"end_at"`
	ChargeAt       *int64 `json:"charge_at"`
	CurrentStart   *int64 `json:"current_start"`
	CurrentEnd     *int64 `json:"current_end"`
	CreatedAt      *int64 `json:"created_at"`
}

type customerResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Contact   string `json:"contact"`
	CreatedAt *int64 `json:"created_at"`
}

type lineItem struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
	Quantity int    `json:"quantity"`
}

type invoiceResponse struct {
	ID             string     `json:"id"`
	Type           string     `json:"type"`
	Description    string     `json:"description"`
	CustomerID     string     `json:"customer_id"`
	SubscriptionID string     `json:"subscription_id"`
	OrderID        string     `json:"order_id"`
	PaymentID      string     `json:"payment_id"`
	Currency       string     `json:"currency"`
	Status         string     `json:"status"`
	ShortURL       string     `json:"short_url"`
	LineItems      []lineItem `json:"line_items"`
	Amount         int64      `json:"amount"`
	AmountPaid     int64      `json:"amount_paid"`
	AmountDue      int64      `json:"amount_due"`
	ExpireBy       *int64     `json:"expire_by"`
	Date           *int64     `json:"date"`
	PaidAt         *int64     `json:"paid_at"`
	CancelledAt    *int64     `json:"cancelled_at"`
	CreatedAt      *int64     `json:"created_at"`
}

// unixTime converts a nullable unix timestamp; null and zero become nil
func unixTime(sec *int64) *time.Time {
	if sec == nil {
		return nil
	}
	return timeutil.FromUnix(*sec)
}

func (o *orderResponse) toRemote() *ports.RemoteOrder {
	return &ports.RemoteOrder{
		ID:         o.ID,
		Currency:   o.Currency,
		Receipt:    o.Receipt,
		Status:     o.Status,
		Amount:     o.Amount,
		AmountPaid: o.AmountPaid,
		AmountDue:  o.AmountDue,
		Attempts:   o.Attempts,
		CreatedAt:  unixTime(o.CreatedAt),
	}
}

func (p *paymentResponse) toRemote() *ports.RemotePayment {
	return &ports.RemotePayment{
		ID:         p.ID,
		OrderID:    p.OrderID,
		InvoiceID:  p.InvoiceID,
		CustomerID: p.CustomerID,
		Currency:   p.Currency,
		Status:     p.Status,
		Method:     p.Method,
		Email:      p.Email,
		Contact:    p.Contact,
		Amount:     p.Amount,
		Captured:   p.Captured,
		CreatedAt:  unixTime(p.CreatedAt),
	}
}

func (p *planResponse) toRemote() *ports.RemotePlan {
	return &ports.RemotePlan{
		ID:       p.ID,
		Period:   p.Period,
		Interval: p.Interval,
		Item: ports.PlanItem{
			ID:       p.Item.ID,
			Name:     p.Item.Name,
			Currency: p.Item.Currency,
			Amount:   p.Item.Amount,
		},
		CreatedAt: unixTime(p.CreatedAt),
	}
}

func (s *subscriptionResponse) toRemote() *ports.RemoteSubscription {
	return &ports.RemoteSubscription{
		ID:             s.ID,
		PlanID:         s.PlanID,
		CustomerID:     s.CustomerID,
		Status:         s.Status,
		ShortURL:       s.ShortURL,
		Quantity:       s.Quantity,
		TotalCount:     s.TotalCount,
		PaidCount:      s.PaidCount,
		RemainingCount: s.RemainingCount,
		StartAt:        unixTime(s.StartAt),
		EndAt:          unixTime(s.EndAt),
		ChargeAt:       unixTime(s.ChargeAt),
		CurrentStart:   unixTime(s.CurrentStart),
		CurrentEnd:     unixTime(s.CurrentEnd),
		CreatedAt:      unixTime(s.CreatedAt),
	}
}

func (c *customerResponse) toRemote() *ports.RemoteCustomer {
	return &ports.RemoteCustomer{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Contact:   c.Contact,
		CreatedAt: unixTime(c.CreatedAt),
	}
}

func (i *invoiceResponse) toRemote() *ports.RemoteInvoice {
	items := make([]ports.RemoteLineItem, len(i.LineItems))
	for idx, li := range i.LineItems {
		items[idx] = ports.RemoteLineItem{
			ID:       li.ID,
			Name:     li.Name,
			Currency: li.Currency,
			Amount:   li.Amount,
			Quantity: li.Quantity,
		}
	}

	return &ports.RemoteInvoice{
		ID:             i.ID,
		Type:           i.Type,
		Description:    i.Description,
		CustomerID:     i.CustomerID,
		SubscriptionID: i.SubscriptionID,
		OrderID:        i.OrderID,
		PaymentID:      i.PaymentID,
		Currency:       i.Currency,
		Status:         i.Status,
		ShortURL:       i.ShortURL,
		LineItems:      items,
		Amount:         i.Amount,
		AmountPaid:     i.AmountPaid,
		AmountDue:      i.AmountDue,
		ExpireBy:       unixTime(i.ExpireBy),
		IssuedAt:       unixTime(i.Date),
		PaidAt:         unixTime(i.PaidAt),
		CancelledAt:    unixTime(i.CancelledAt),
		CreatedAt:      unixTime(i.CreatedAt),
	}
}
