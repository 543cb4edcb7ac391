package razorpay

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/squareboat/razorpay-cashier/internal/domain/ports"
	pkgerrors "github.com/squareboat/razorpay-cashier/pkg/errors"
)

// FetchPlan implements ports.Gateway.FetchPlan
func (c *Client) FetchPlan(ctx context.Context, planID string) (*ports.RemotePlan, error) {
	if planID == "" {
		return nil, pkgerrors.NewValidationError("plan_id", "plan id is required")
	}

	var resp planResponse
	endpoint := fmt.Sprintf("/plans/%s", url.PathEscape(planID))
	if err := c.makeRequest(ctx, "plan.fetch", http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toRemote(), nil
}

// CreateSubscription implements ports.Gateway.CreateSubscription
func (c *Client) CreateSubscription(ctx context.Context, req ports.CreateSubscriptionRequest) (*ports.RemoteSubscription, error) {
	if req.PlanID == "" {
		return nil, pkgerrors.NewValidationError("plan_id", "plan id is required")
	}

	body := map[string]interface{}{
		"plan_id":     req.PlanID,
		"total_count": req.TotalCount,
		"quantity":    req.Quantity,
	}
	if req.StartAt != nil {
		body["start_at"] = req.StartAt.Unix()
	}
	if req.CustomerID != "" {
		body["customer_id"] = req.CustomerID
	}

	var resp subscriptionResponse
	if err := c.makeRequest(ctx, "subscription.create", http.MethodPost, "/subscriptions", withExtra(body, req.Extra), &resp); err != nil {
		return nil, err
	}
	return resp.toRemote(), nil
}

// FetchSubscription implements ports.Gateway.FetchSubscription
func (c *Client) FetchSubscription(ctx context.Context, subscriptionID string) (*ports.RemoteSubscription, error) {
	return c.subscriptionCall(ctx, "subscription.fetch", http.MethodGet, subscriptionID, "", nil)
}

// PauseSubscription implements ports.Gateway.PauseSubscription
func (c *Client) PauseSubscription(ctx context.Context, subscriptionID string) (*ports.RemoteSubscription, error) {
	body := map[string]interface{}{"pause_at": "now"}
	return c.subscriptionCall(ctx, "subscription.pause", http.MethodPost, subscriptionID, "/pause", body)
}

// ResumeSubscription implements ports.Gateway.ResumeSubscription
func (c *Client) ResumeSubscription(ctx context.Context, subscriptionID string) (*ports.RemoteSubscription, error) {
	body := map[string]interface{}{"resume_at": "now"}
	return c.subscriptionCall(ctx, "subscription.resume", http.MethodPost, subscriptionID, "/resume", body)
}

// CancelSubscription implements ports.Gateway.CancelSubscription
func (c *Client) CancelSubscription(ctx context.Context, subscriptionID string, atCycleEnd bool) (*ports.RemoteSubscription, error) {
	body := map[string]interface{}{"cancel_at_cycle_end": boolFlag(atCycleEnd)}
	return c.subscriptionCall(ctx, "subscription.cancel", http.MethodPost, subscriptionID, "/cancel", body)
}

// UpdateSubscription implements ports.Gateway.UpdateSubscription
func (c *Client) UpdateSubscription(ctx context.Context, subscriptionID string, req ports.UpdateSubscriptionRequest) (*ports.RemoteSubscription, error) {
	body := map[string]interface{}{}
	if req.PlanID != "" {
		body["plan_id"] = req.PlanID
	}
	if req.Quantity != nil {
		body["quantity"] = *req.Quantity
	}
	return c.subscriptionCall(ctx, "subscription.update", http.MethodPatch, subscriptionID, "", withExtra(body, req.Extra))
}

func (c *Client) subscriptionCall(ctx context.Context, operation, method, subscriptionID, suffix string, body map[string]interface{}) (*ports.RemoteSubscription, error) {
	if subscriptionID == "" {
		return nil, pkgerrors.NewValidationError("subscription_id", "subscription id is required")
	}

	var request interface{}
	if body != nil {
		request = body
	}

	var resp subscriptionResponse
	endpoint := fmt.Sprintf("/subscriptions/%s%s", url.PathEscape(subscriptionID), suffix)
	if err := c.makeRequest(ctx, operation, method, endpoint, request, &resp); err != nil {
		return nil, err
	}
	return resp.toRemote(), nil
}
