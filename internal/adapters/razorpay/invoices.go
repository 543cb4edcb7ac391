package razorpay

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/squareboat/razorpay-cashier/internal/domain/ports"
	pkgerrors "github.com/squareboat/razorpay-cashier/pkg/errors"
)

// CreateInvoice implements ports.Gateway.CreateInvoice
func (c *Client) CreateInvoice(ctx context.Context, req ports.CreateRemoteInvoiceRequest) (*ports.RemoteInvoice, error) {
	if req.CustomerID == "" {
		return nil, pkgerrors.NewValidationError("customer_id", "customer id is required")
	}

	body := map[string]interface{}{
		"type":         "invoice",
		"customer_id":  req.CustomerID,
		"description":  req.Description,
		"sms_notify":   boolFlag(req.SMSNotify),
		"email_notify": boolFlag(req.EmailNotify),
	}
	if req.SubscriptionID != "" {
		body["subscription_id"] = req.SubscriptionID
	}
	if req.ExpireBy != nil {
		body["expire_by"] = req.ExpireBy.Unix()
	}
	if len(req.LineItems) > 0 {
		items := make([]lineItem, len(req.LineItems))
		for i, li := range req.LineItems {
			items[i] = lineItem{
				Name:     li.Name,
				Currency: li.Currency,
				Amount:   li.Amount,
				Quantity: li.Quantity,
			}
		}
		body["line_items"] = items
	}

	var resp invoiceResponse
	if err := c.makeRequest(ctx, "invoice.create", http.MethodPost, "/invoices", withExtra(body, req.Extra), &resp); err != nil {
		return nil, err
	}
	return resp.toRemote(), nil
}

// FetchInvoice implements ports.Gateway.FetchInvoice
func (c *Client) FetchInvoice(ctx context.Context, invoiceID string) (*ports.RemoteInvoice, error) {
	return c.invoiceCall(ctx, "invoice.fetch", http.MethodGet, invoiceID, "")
}

// IssueInvoice implements ports.Gateway.IssueInvoice
func (c *Client) IssueInvoice(ctx context.Context, invoiceID string) (*ports.RemoteInvoice, error) {
	return c.invoiceCall(ctx, "invoice.issue", http.MethodPost, invoiceID, "/issue")
}

// CancelInvoice implements ports.Gateway.CancelInvoice
func (c *Client) CancelInvoice(ctx context.Context, invoiceID string) (*ports.RemoteInvoice, error) {
	return c.invoiceCall(ctx, "invoice.cancel", http.MethodPost, invoiceID, "/cancel")
}

func (c *Client) invoiceCall(ctx context.Context, operation, method, invoiceID, suffix string) (*ports.RemoteInvoice, error) {
	if invoiceID == "" {
		return nil, pkgerrors.NewValidationError("invoice_id", "invoice id is required")
	}

	var resp invoiceResponse
	endpoint := fmt.Sprintf("/invoices/%s%s", url.PathEscape(invoiceID), suffix)
	if err := c.makeRequest(ctx, operation, method, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toRemote(), nil
}
