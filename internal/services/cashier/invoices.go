package cashier

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/squareboat/razorpay-cashier/internal/domain"
	"github.com/squareboat/razorpay-cashier/internal/domain/ports"
	"github.com/squareboat/razorpay-cashier/pkg/observability"
	"github.com/squareboat/razorpay-cashier/pkg/timeutil"
)

const defaultLineItemName = "Item"

// CreateInvoice creates a gateway invoice for a subscription and mirrors it locally.
// The local subscription must already exist; failures are reported in the result.
func (s *Service) CreateInvoice(ctx context.Context, req ports.CreateInvoiceRequest) *ports.InvoiceResult {
	inv, remote, err := s.createInvoice(ctx, req)
	if err != nil {
		observability.RecordInvoiceOperation("create", observability.OutcomeFailed)
		s.logger.Error("create invoice failed",
			ports.String("subscription_id", req.SubscriptionID),
			ports.Err(err))
		return &ports.InvoiceResult{
			Success:        false,
			Message:        "Failed to create Razorpay invoice: " + err.Error(),
			SubscriptionID: req.SubscriptionID,
		}
	}

	observability.RecordInvoiceOperation("create", observability.OutcomeSuccess)
	observability.RecordInvoiceAmount(inv.Currency, remote.Amount)
	return &ports.InvoiceResult{
		Success:       true,
		Message:       "Razorpay invoice created and synced locally",
		RemoteInvoice: remote,
		Invoice:       inv,
	}
}

func (s *Service) createInvoice(ctx context.Context, req ports.CreateInvoiceRequest) (*domain.Invoice, *ports.RemoteInvoice, error) {
	if req.SubscriptionID == "" {
		return nil, nil, domain.ErrValidationMissingField.WithDetail("field", "subscription_id")
	}

	remoteSub, err := s.gateway.FetchSubscription(ctx, req.SubscriptionID)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch subscription %s: %w", req.SubscriptionID, err)
	}

	customerID, err := s.resolveCustomer(ctx, req, remoteSub)
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	expireBy := timeutil.AddDays(now, s.opts.InvoiceExpiryDays)

	description := "Invoice for subscription " + req.SubscriptionID
	if req.Notes != nil && *req.Notes != "" {
		description = *req.Notes
	}

	remote, err := s.gateway.CreateInvoice(ctx, ports.CreateRemoteInvoiceRequest{
		CustomerID:     customerID,
		SubscriptionID: req.SubscriptionID,
		Description:    description,
		SMSNotify:      true,
		EmailNotify:    true,
		ExpireBy:       &expireBy,
		LineItems:      s.remoteLineItems(req.LineItems),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create remote invoice: %w", err)
	}
	s.logger.Info("razorpay invoice created",
		ports.String("invoice_id", remote.ID),
		ports.String("subscription_id", req.SubscriptionID))

	local, err := s.findLocalSubscription(ctx, req.SubscriptionID)
	if err != nil {
		return nil, nil, err
	}
	if local == nil {
		return nil, nil, fmt.Errorf("local subscription not found for Razorpay ID %s: %w",
			req.SubscriptionID, domain.ErrSubscriptionNotFound)
	}

	currency := remote.Currency
	if currency == "" {
		currency = s.opts.Currency
	}

	inv := &domain.Invoice{
		SubscriptionID:    &local.ID,
		RazorpayInvoiceID: remote.ID,
		InvoiceNumber:     domain.GenerateInvoiceNumber(now, remote.ID),
		Amount:            domain.FromMinorUnits(remote.Amount),
		Currency:          currency,
		Status:            domain.InvoiceStatus(remote.Status),
		DueDate:           timeutil.Coalesce(remote.ExpireBy, &expireBy),
		Notes:             req.Notes,
		CreatedAt:         now,
	}

	err = s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.invRepo.Create(ctx, tx, inv)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("store invoice %s: %w", remote.ID, err)
	}

	return inv, remote, nil
}

// resolveCustomer picks the invoice customer: the explicit id, then the
// subscription's customer, then a customer created from the request details
func (s *Service) resolveCustomer(ctx context.Context, req ports.CreateInvoiceRequest, remoteSub *ports.RemoteSubscription) (string, error) {
	if req.CustomerID != "" {
		customer, err := s.gateway.FetchCustomer(ctx, req.CustomerID)
		if err != nil {
			return "", fmt.Errorf("fetch customer %s: %w", req.CustomerID, err)
		}
		return customer.ID, nil
	}

	if remoteSub.CustomerID != "" {
		return remoteSub.CustomerID, nil
	}

	if req.Customer == nil {
		return "", domain.ErrCustomerRequired
	}

	customer, err := s.gateway.CreateCustomer(ctx, ports.CreateCustomerRequest{
		Name:    req.Customer.Name,
		Email:   req.Customer.Email,
		Contact: req.Customer.Contact,
	})
	if err != nil {
		return "", fmt.Errorf("create customer: %w", err)
	}
	return customer.ID, nil
}

func (s *Service) remoteLineItems(items []ports.LineItem) []ports.RemoteLineItem {
	if len(items) == 0 {
		return nil
	}

	out := make([]ports.RemoteLineItem, 0, len(items))
	for _, item := range items {
		line := ports.RemoteLineItem{
			Name:     item.Name,
			Amount:   domain.ToMinorUnits(item.Amount),
			Currency: item.Currency,
			Quantity: item.Quantity,
		}
		if line.Name == "" {
			line.Name = defaultLineItemName
		}
		if line.Currency == "" {
			line.Currency = s.opts.Currency
		}
		if line.Quantity <= 0 {
			line.Quantity = 1
		}
		out = append(out, line)
	}
	return out
}

// FetchInvoice fetches a gateway invoice and returns it with its local mirror,
// creating the mirror on first sight
func (s *Service) FetchInvoice(ctx context.Context, invoiceID string) *ports.InvoiceResult {
	inv, remote, err := s.fetchInvoice(ctx, invoiceID)
	if err != nil {
		observability.RecordInvoiceOperation("fetch", observability.OutcomeFailed)
		s.logger.Error("fetch invoice failed",
			ports.String("invoice_id", invoiceID),
			ports.Err(err))
		return &ports.InvoiceResult{
			Success:   false,
			Message:   "Failed to retrieve Razorpay invoice: " + err.Error(),
			InvoiceID: invoiceID,
		}
	}

	observability.RecordInvoiceOperation("fetch", observability.OutcomeSuccess)
	return &ports.InvoiceResult{
		Success:       true,
		RemoteInvoice: remote,
		Invoice:       inv,
	}
}

func (s *Service) fetchInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, *ports.RemoteInvoice, error) {
	remote, err := s.gateway.FetchInvoice(ctx, invoiceID)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch invoice %s: %w", invoiceID, err)
	}

	var subscriptionID *uuid.UUID
	if remote.SubscriptionID != "" {
		local, err := s.findLocalSubscription(ctx, remote.SubscriptionID)
		if err != nil {
			return nil, nil, err
		}
		if local != nil {
			subscriptionID = &local.ID
		} else {
			s.logger.Warn("invoice references unknown subscription",
				ports.String("invoice_id", remote.ID),
				ports.String("subscription_id", remote.SubscriptionID))
		}
	}

	now := s.now()
	candidate := &domain.Invoice{
		SubscriptionID:    subscriptionID,
		RazorpayInvoiceID: remote.ID,
		InvoiceNumber:     domain.GenerateInvoiceNumber(now, remote.ID),
		Amount:            domain.FromMinorUnits(remote.Amount),
		Currency:          remote.Currency,
		Status:            domain.InvoiceStatus(remote.Status),
		DueDate:           remote.ExpireBy,
		IssuedAt:          remote.IssuedAt,
		PaidAt:            remote.PaidAt,
		CancelledAt:       remote.CancelledAt,
		CreatedAt:         now,
	}
	if remote.Description != "" {
		description := remote.Description
		candidate.Notes = &description
	}

	var (
		stored  *domain.Invoice
		created bool
	)
	err = s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		stored, created, err = s.invRepo.FirstOrCreate(ctx, tx, candidate)
		return err
	})
	if err != nil {
		return nil, nil, fmt.Errorf("sync invoice %s: %w", remote.ID, err)
	}

	if created {
		s.logger.Info("invoice mirrored locally",
			ports.String("invoice_id", remote.ID))
	}
	return stored, remote, nil
}

// TransitionInvoice issues or cancels a gateway invoice and mirrors the new
// status locally. Unknown actions fail before any remote call. A missing
// local row is not a failure; the result then carries no local invoice.
func (s *Service) TransitionInvoice(ctx context.Context, invoiceID string, action domain.InvoiceAction) *ports.InvoiceResult {
	operation := string(action)
	inv, remote, err := s.transitionInvoice(ctx, invoiceID, action)
	if err != nil {
		if !action.Valid() {
			operation = "invalid_action"
		}
		observability.RecordInvoiceOperation(operation, observability.OutcomeFailed)
		s.logger.Error("update invoice failed",
			ports.String("invoice_id", invoiceID),
			ports.String("action", string(action)),
			ports.Err(err))
		return &ports.InvoiceResult{
			Success:   false,
			Message:   "Failed to update Razorpay invoice: " + err.Error(),
			InvoiceID: invoiceID,
		}
	}

	observability.RecordInvoiceOperation(operation, observability.OutcomeSuccess)
	return &ports.InvoiceResult{
		Success:       true,
		Message:       fmt.Sprintf("Razorpay invoice %s successfully", action.PastTense()),
		RemoteInvoice: remote,
		Invoice:       inv,
	}
}

func (s *Service) transitionInvoice(ctx context.Context, invoiceID string, action domain.InvoiceAction) (*domain.Invoice, *ports.RemoteInvoice, error) {
	var transition func(context.Context, string) (*ports.RemoteInvoice, error)
	switch action {
	case domain.InvoiceActionIssue:
		transition = s.gateway.IssueInvoice
	case domain.InvoiceActionCancel:
		transition = s.gateway.CancelInvoice
	default:
		return nil, nil, domain.ErrInvoiceInvalidAction.WithDetail("action", string(action))
	}

	remote, err := transition(ctx, invoiceID)
	if err != nil {
		return nil, nil, fmt.Errorf("%s invoice %s: %w", action, invoiceID, err)
	}
	s.logger.Info("razorpay invoice action performed",
		ports.String("invoice_id", invoiceID),
		ports.String("action", string(action)))

	local, err := s.invRepo.FindByRemoteID(ctx, nil, invoiceID)
	if err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			return nil, remote, nil
		}
		return nil, nil, fmt.Errorf("find local invoice: %w", err)
	}

	if remote.Status != "" {
		local.Status = domain.InvoiceStatus(remote.Status)
	}
	local.IssuedAt = timeutil.Coalesce(remote.IssuedAt, local.IssuedAt)
	local.PaidAt = timeutil.Coalesce(remote.PaidAt, local.PaidAt)
	local.CancelledAt = timeutil.Coalesce(remote.CancelledAt, local.CancelledAt)

	err = s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.invRepo.Update(ctx, tx, local)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("update local invoice %s: %w", invoiceID, err)
	}

	return local, remote, nil
}

// ListInvoices lists the invoices mirrored for a local subscription, newest first
func (s *Service) ListInvoices(ctx context.Context, subscriptionID uuid.UUID) ([]*domain.Invoice, error) {
	invoices, err := s.invRepo.ListBySubscription(ctx, nil, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}
