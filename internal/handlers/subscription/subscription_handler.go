package subscription

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/squareboat/razorpay-cashier/internal/domain"
	"github.com/squareboat/razorpay-cashier/internal/domain/ports"
	pkgerrors "github.com/squareboat/razorpay-cashier/pkg/errors"
)

const maxBodyBytes = 1 << 20

// Handler serves the billing HTTP API
type Handler struct {
	service ports.CashierService
	logger  *zap.Logger
}

// NewHandler creates a new billing handler
func NewHandler(service ports.CashierService, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the billing routes on mux
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/subscriptions/{id}/pause", h.PauseSubscription)
	mux.HandleFunc("POST /v1/subscriptions/{id}/resume", h.ResumeSubscription)
	mux.HandleFunc("POST /v1/subscriptions/{id}/cancel", h.CancelSubscription)
	mux.HandleFunc("POST /v1/subscriptions/{id}/swap", h.SwapPlan)
	mux.HandleFunc("POST /v1/subscriptions/{id}/sync-trial", h.SyncTrialStatus)
	mux.HandleFunc("POST /v1/subscriptions/{id}/end-trial", h.EndTrial)

	mux.HandleFunc("POST /v1/invoices", h.CreateInvoice)
	mux.HandleFunc("GET /v1/invoices", h.ListInvoices)
	mux.HandleFunc("GET /v1/invoices/{id}", h.FetchInvoice)
	mux.HandleFunc("POST /v1/invoices/{id}/{action}", h.TransitionInvoice)
}

// LifecycleResponse is returned by the subscription lifecycle endpoints
type LifecycleResponse struct {
	Subscription *domain.Subscription `json:"subscription,omitempty"`
	Success      bool                 `json:"success"`
}

// CancelRequest is the optional body of the cancel endpoint
type CancelRequest struct {
	GraceDays int `json:"grace_days"`
}

// SwapRequest is the body of the swap endpoint
type SwapRequest struct {
	PlanID string `json:"plan_id"`
}

// PauseSubscription handles POST /v1/subscriptions/{id}/pause
func (h *Handler) PauseSubscription(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "pause", h.service.PauseSubscription)
}

// ResumeSubscription handles POST /v1/subscriptions/{id}/resume
func (h *Handler) ResumeSubscription(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "resume", h.service.ResumeSubscription)
}

// EndTrial handles POST /v1/subscriptions/{id}/end-trial
func (h *Handler) EndTrial(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "end_trial", h.service.EndTrial)
}

// CancelSubscription handles POST /v1/subscriptions/{id}/cancel
func (h *Handler) CancelSubscription(w http.ResponseWriter, r *http.Request) {
	var req CancelRequest
	if err := decodeBody(w, r, &req, true); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.lifecycle(w, r, "cancel", func(ctx context.Context, id string) (bool, error) {
		return h.service.CancelSubscription(ctx, id, req.GraceDays)
	})
}

// SwapPlan handles POST /v1/subscriptions/{id}/swap
func (h *Handler) SwapPlan(w http.ResponseWriter, r *http.Request) {
	var req SwapRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.PlanID == "" {
		h.respondError(w, http.StatusBadRequest, "plan_id is required")
		return
	}

	h.lifecycle(w, r, "swap", func(ctx context.Context, id string) (bool, error) {
		return h.service.SwapPlan(ctx, id, req.PlanID)
	})
}

// SyncTrialStatus handles POST /v1/subscriptions/{id}/sync-trial
func (h *Handler) SyncTrialStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	sub, err := h.service.SyncTrialStatus(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, "sync_trial", id, err)
		return
	}

	h.respondJSON(w, http.StatusOK, LifecycleResponse{Success: sub != nil, Subscription: sub})
}

func (h *Handler) lifecycle(w http.ResponseWriter, r *http.Request, operation string, fn func(context.Context, string) (bool, error)) {
	id := r.PathValue("id")

	ok, err := fn(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, operation, id, err)
		return
	}

	h.logger.Info("Subscription lifecycle request handled",
		zap.String("operation", operation),
		zap.String("subscription_id", id),
		zap.Bool("success", ok),
	)
	h.respondJSON(w, http.StatusOK, LifecycleResponse{Success: ok})
}

// CreateInvoice handles POST /v1/invoices
func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req ports.CreateInvoiceRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.SubscriptionID == "" {
		h.respondError(w, http.StatusBadRequest, "subscription_id is required")
		return
	}

	h.respondInvoice(w, h.service.CreateInvoice(r.Context(), req))
}

// FetchInvoice handles GET /v1/invoices/{id}
func (h *Handler) FetchInvoice(w http.ResponseWriter, r *http.Request) {
	h.respondInvoice(w, h.service.FetchInvoice(r.Context(), r.PathValue("id")))
}

// TransitionInvoice handles POST /v1/invoices/{id}/{action}
func (h *Handler) TransitionInvoice(w http.ResponseWriter, r *http.Request) {
	action := domain.InvoiceAction(r.PathValue("action"))
	h.respondInvoice(w, h.service.TransitionInvoice(r.Context(), r.PathValue("id"), action))
}

// ListInvoices handles GET /v1/invoices?subscription_id=<local uuid>
func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	subscriptionID, err := uuid.Parse(r.URL.Query().Get("subscription_id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "subscription_id must be a valid UUID")
		return
	}

	invoices, err := h.service.ListInvoices(r.Context(), subscriptionID)
	if err != nil {
		h.handleServiceError(w, "list_invoices", subscriptionID.String(), err)
		return
	}
	if invoices == nil {
		invoices = []*domain.Invoice{}
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{"invoices": invoices})
}

func (h *Handler) respondInvoice(w http.ResponseWriter, result *ports.InvoiceResult) {
	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	h.respondJSON(w, status, result)
}

// handleServiceError maps service errors to HTTP status codes
func (h *Handler) handleServiceError(w http.ResponseWriter, operation, id string, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case domain.IsValidationError(err) || pkgerrors.IsValidationError(err):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrSubscriptionNotFound):
		status, message = http.StatusNotFound, "subscription not found"
	case pkgerrors.IsGatewayError(err):
		status, message = http.StatusBadGateway, err.Error()
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		status, message = http.StatusGatewayTimeout, "request canceled"
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("operation", operation),
			zap.String("id", id),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	h.respondError(w, status, message)
}

// decodeBody decodes a JSON request body into dst. An empty body is accepted
// only when optional is set.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}, optional bool) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(body).Decode(dst)
	if errors.Is(err, io.EOF) {
		if optional {
			return nil
		}
		return errors.New("request body is required")
	}
	if err != nil {
		return errors.New("invalid JSON body: " + err.Error())
	}
	return nil
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// respondError sends an error response
func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
