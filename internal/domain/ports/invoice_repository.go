package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/squareboat/razorpay-cashier/internal/domain"
)

// InvoiceRepository defines the interface for invoice persistence.
// Lookups that find nothing return an error wrapping domain.ErrInvoiceNotFound.
type InvoiceRepository interface {
	// Create inserts a new invoice, assigning ID and timestamps when unset
	Create(ctx context.Context, tx DBTX, invoice *domain.Invoice) error

	// GetByID retrieves an invoice by its local ID
	GetByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Invoice, error)

	// FindByRemoteID retrieves an invoice by its gateway invoice ID
	FindByRemoteID(ctx context.Context, db DBTX, razorpayInvoiceID string) (*domain.Invoice, error)

	// FirstOrCreate returns the invoice stored under invoice.RazorpayInvoiceID, inserting
	// invoice when none exists. created reports whether the row was inserted by this call.
	// Concurrent callers for the same remote id observe a single row.
	FirstOrCreate(ctx context.Context, tx DBTX, invoice *domain.Invoice) (stored *domain.Invoice, created bool, err error)

	// ListBySubscription lists the invoices of a local subscription, newest first
	ListBySubscription(ctx context.Context, db DBTX, subscriptionID uuid.UUID) ([]*domain.Invoice, error)

	// Update persists status and lifecycle timestamps and bumps UpdatedAt
	Update(ctx context.Context, tx DBTX, invoice *domain.Invoice) error
}
