package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the invoice state.
// Gateway statuses outside this list are stored verbatim.
type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "draft"
	InvoiceStatusPending       InvoiceStatus = "pending"
	InvoiceStatusIssued        InvoiceStatus = "issued"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusCancelled     InvoiceStatus = "cancelled"
	InvoiceStatusExpired       InvoiceStatus = "expired"
)

// InvoiceAction is a remote status transition that can be requested for an invoice
type InvoiceAction string

const (
	InvoiceActionIssue  InvoiceAction = "issue"
	InvoiceActionCancel InvoiceAction = "cancel"
)

// Valid reports whether the action is one the gateway supports
func (a InvoiceAction) Valid() bool {
	return a == InvoiceActionIssue || a == InvoiceActionCancel
}

// PastTense returns the verb used in result messages ("issued", "cancelled")
func (a InvoiceAction) PastTense() string {
	switch a {
	case InvoiceActionIssue:
		return "issued"
	case InvoiceActionCancel:
		return "cancelled"
	default:
		return string(a) + "d"
	}
}

// DefaultCurrency is used whenever neither the caller nor the configuration names one
const DefaultCurrency = "INR"

// Invoice is the local mirror of a gateway invoice.
// Amount is held in major currency units; the gateway works in minor units.
type Invoice struct {
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	Amount            decimal.Decimal `json:"amount"`
	SubscriptionID    *uuid.UUID      `json:"subscription_id"`
	DueDate           *time.Time      `json:"due_date"`
	IssuedAt          *time.Time      `json:"issued_at"`
	PaidAt            *time.Time      `json:"paid_at"`
	CancelledAt       *time.Time      `json:"cancelled_at"`
	Notes             *string         `json:"notes"`
	RazorpayInvoiceID string          `json:"razorpay_invoice_id"`
	InvoiceNumber     string          `json:"invoice_number"`
	Currency          string          `json:"currency"`
	Status            InvoiceStatus   `json:"status"`
	ID                uuid.UUID       `json:"id"`
}

// IsPaid returns true once the gateway has reported payment
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid || i.PaidAt != nil
}

// IsCancelled returns true if the invoice has been cancelled
func (i *Invoice) IsCancelled() bool {
	return i.Status == InvoiceStatusCancelled
}

// IsOverdue returns true if the invoice is unpaid and past its due date
func (i *Invoice) IsOverdue(now time.Time) bool {
	if i.IsPaid() || i.IsCancelled() || i.DueDate == nil {
		return false
	}
	return i.DueDate.Before(now)
}

// GenerateInvoiceNumber builds the local invoice number for a gateway invoice.
// The gateway id makes it unique even when several invoices are created in the same second.
func GenerateInvoiceNumber(now time.Time, razorpayInvoiceID string) string {
	return fmt.Sprintf("INV-%d-%s", now.Unix(), razorpayInvoiceID)
}

var hundred = decimal.NewFromInt(100)

// ToMinorUnits converts a major-unit amount (rupees) to gateway minor units (paise).
// Fractions of a minor unit are truncated.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).IntPart()
}

// FromMinorUnits converts gateway minor units (paise) to a major-unit amount (rupees)
func FromMinorUnits(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}
