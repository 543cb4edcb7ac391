package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/squareboat/razorpay-cashier/internal/domain"
	"github.com/squareboat/razorpay-cashier/internal/domain/ports"
	"github.com/squareboat/razorpay-cashier/pkg/timeutil"
)

const invoiceColumns = `id, subscription_id, razorpay_invoice_id, invoice_number, amount, currency,
	status, due_date, issued_at, paid_at, cancelled_at, notes, created_at, updated_at`

// InvoiceRepository implements ports.InvoiceRepository with pgx
type InvoiceRepository struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db ports.DBPort) *InvoiceRepository {
	return &InvoiceRepository{pool: db.GetDB()}
}

// Create inserts a new invoice
func (r *InvoiceRepository) Create(ctx context.Context, tx ports.DBTX, inv *domain.Invoice) error {
	args, err := prepareInvoiceInsert(inv)
	if err != nil {
		return err
	}

	_, err = executor(r.pool, tx).Exec(ctx, `
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`, args...)
	if err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}
	return nil
}

// FirstOrCreate returns the invoice stored under the remote id, inserting inv when absent.
// The insert and the read happen in one statement so racing callers see the same row.
func (r *InvoiceRepository) FirstOrCreate(ctx context.Context, tx ports.DBTX, inv *domain.Invoice) (*domain.Invoice, bool, error) {
	args, err := prepareInvoiceInsert(inv)
	if err != nil {
		return nil, false, err
	}

	q := executor(r.pool, tx)
	row := q.QueryRow(ctx, `
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT DO NOTHING
		RETURNING `+invoiceColumns, args...)
	stored, err := scanInvoice(row)
	if err == nil {
		return stored, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("insert invoice %s: %w", inv.RazorpayInvoiceID, err)
	}

	stored, err = r.FindByRemoteID(ctx, q, inv.RazorpayInvoiceID)
	if err != nil {
		return nil, false, err
	}
	return stored, false, nil
}

// GetByID retrieves an invoice by its local ID
func (r *InvoiceRepository) GetByID(ctx context.Context, db ports.DBTX, id uuid.UUID) (*domain.Invoice, error) {
	row := executor(r.pool, db).QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	inv, err := scanInvoice(row)
	if err != nil {
		return nil, notFound(err, domain.ErrInvoiceNotFound, "get invoice %s", id)
	}
	return inv, nil
}

// FindByRemoteID retrieves an invoice by its gateway invoice ID
func (r *InvoiceRepository) FindByRemoteID(ctx context.Context, db ports.DBTX, razorpayInvoiceID string) (*domain.Invoice, error) {
	row := executor(r.pool, db).QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE razorpay_invoice_id = $1`, razorpayInvoiceID)
	inv, err := scanInvoice(row)
	if err != nil {
		return nil, notFound(err, domain.ErrInvoiceNotFound, "find invoice %s", razorpayInvoiceID)
	}
	return inv, nil
}

// ListBySubscription lists the invoices of a local subscription, newest first
func (r *InvoiceRepository) ListBySubscription(ctx context.Context, db ports.DBTX, subscriptionID uuid.UUID) ([]*domain.Invoice, error) {
	rows, err := executor(r.pool, db).Query(ctx, `
		SELECT `+invoiceColumns+` FROM invoices
		WHERE subscription_id = $1
		ORDER BY created_at DESC`, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("list invoices for subscription %s: %w", subscriptionID, err)
	}
	defer rows.Close()

	var invoices []*domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list invoices for subscription %s: %w", subscriptionID, err)
	}
	return invoices, nil
}

// Update persists status and lifecycle timestamps and bumps UpdatedAt
func (r *InvoiceRepository) Update(ctx context.Context, tx ports.DBTX, inv *domain.Invoice) error {
	inv.UpdatedAt = timeutil.Now()

	tag, err := executor(r.pool, tx).Exec(ctx, `
		UPDATE invoices SET
			status = $2,
			issued_at = $3,
			paid_at = $4,
			cancelled_at = $5,
			updated_at = $6
		WHERE id = $1`,
		inv.ID,
		string(inv.Status),
		inv.IssuedAt,
		inv.PaidAt,
		inv.CancelledAt,
		inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice %s: %w", inv.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update invoice %s: %w", inv.ID, domain.ErrInvoiceNotFound)
	}
	return nil
}

// prepareInvoiceInsert fills defaults on inv and returns the positional insert arguments
func prepareInvoiceInsert(inv *domain.Invoice) ([]interface{}, error) {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	if inv.Currency == "" {
		inv.Currency = domain.DefaultCurrency
	}
	if inv.Status == "" {
		inv.Status = domain.InvoiceStatusPending
	}
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = timeutil.Now()
	}
	inv.UpdatedAt = inv.CreatedAt

	amount, err := decimalToNumeric(inv.Amount.Round(2))
	if err != nil {
		return nil, err
	}

	var notes pgtype.Text
	if inv.Notes != nil {
		notes = pgtype.Text{String: *inv.Notes, Valid: true}
	}

	return []interface{}{
		inv.ID,
		inv.SubscriptionID,
		inv.RazorpayInvoiceID,
		inv.InvoiceNumber,
		amount,
		inv.Currency,
		string(inv.Status),
		inv.DueDate,
		inv.IssuedAt,
		inv.PaidAt,
		inv.CancelledAt,
		notes,
		inv.CreatedAt,
		inv.UpdatedAt,
	}, nil
}

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var (
		inv    domain.Invoice
		amount pgtype.Numeric
		status string
		notes  pgtype.Text
	)
	err := row.Scan(
		&inv.ID,
		&inv.SubscriptionID,
		&inv.RazorpayInvoiceID,
		&inv.InvoiceNumber,
		&amount,
		&inv.Currency,
		&status,
		&inv.DueDate,
		&inv.IssuedAt,
		&inv.PaidAt,
		&inv.CancelledAt,
		&notes,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	inv.Amount, err = pgNumericToDecimal(amount)
	if err != nil {
		return nil, err
	}
	inv.Status = domain.InvoiceStatus(status)
	inv.Notes = textPtr(notes)
	return &inv, nil
}
