package razorpay

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/squareboat/razorpay-cashier/internal/domain/ports"
	pkgerrors "github.com/squareboat/razorpay-cashier/pkg/errors"
	"github.com/squareboat/razorpay-cashier/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupClientTest(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := Config{
		KeyID:     "rzp_test_key",
		KeySecret: "rzp_test_secret",
		BaseURL:   server.URL,
	}

	return NewClient(config, &http.Client{}, mocks.NewMockLogger())
}

func decodeBody(t *testing.T, r *http.Request) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestClient_BasicAuth(t *testing.T) {
	client := setupClientTest(t, func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "rzp_test_secret", pass)
		writeJSON(w, http.StatusOK, `{"id":"plan_123","period":"monthly","interval":1,"item":{"id":"item_1","name":"Pro","amount":49900,"currency":"INR"}}`)
	})

	plan, err := client.FetchPlan(context.Background(), "plan_123")
	require.NoError(t, err)
	assert.Equal(t, "plan_123", plan.ID)
	assert.Equal(t, int64(49900), plan.Item.Amount)
	assert.Equal(t, "monthly", plan.Period)
	assert.Nil(t, plan.CreatedAt)
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	client := NewClient(Config{KeyID: "k", KeySecret: "s"}, &http.Client{}, mocks.NewMockLogger())
	assert.Equal(t, DefaultBaseURL, client.config.BaseURL)
}

func TestClient_CreateSubscription(t *testing.T) {
	startAt := time.Date(2025, 4, 16, 0, 0, 0, 0, time.UTC)

	client := setupClientTest(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/subscriptions", r.URL.Path)

		body := decodeBody(t, r)
		assert.Equal(t, "plan_123", body["plan_id"])
		assert.EqualValues(t, 12, body["total_count"])
		assert.EqualValues(t, 1, body["quantity"])
		assert.EqualValues(t, startAt.Unix(), body["start_at"])
		assert.Equal(t, "yes", body["notes"])

		writeJSON(w, http.StatusOK, `{"id":"sub_123","plan_id":"plan_123","status":"created","quantity":1,"total_count":12,"start_at":1744761600,"charge_at":null,"created_at":1744156800}`)
	})

	sub, err := client.CreateSubscription(context.Background(), ports.CreateSubscriptionRequest{
		PlanID:     "plan_123",
		TotalCount: 12,
		Quantity:   1,
		StartAt:    &startAt,
		Extra:      map[string]interface{}{"notes": "yes"},
	})
	require.NoError(t, err)
	assert.Equal(t, "sub_123", sub.ID)
	assert.Equal(t, "created", sub.Status)
	require.NotNil(t, sub.StartAt)
	assert.True(t, sub.StartAt.Equal(startAt))
	assert.Nil(t, sub.ChargeAt)
	require.NotNil(t, sub.CreatedAt)
	assert.Equal(t, time.UTC, sub.CreatedAt.Location())
}

func TestClient_SubscriptionLifecycleCalls(t *testing.T) {
	tests := []struct {
		name         string
		call         func(c *Client) (*ports.RemoteSubscription, error)
		expectMethod string
		expectPath   string
		expectBody   map[string]interface{}
	}{
		{
			name: "pause",
			call: func(c *Client) (*ports.RemoteSubscription, error) {
				return c.PauseSubscription(context.Background(), "sub_1")
			},
			expectMethod: http.MethodPost,
			expectPath:   "/subscriptions/sub_1/pause",
			expectBody:   map[string]interface{}{"pause_at": "now"},
		},
		{
			name: "resume",
			call: func(c *Client) (*ports.RemoteSubscription, error) {
				return c.ResumeSubscription(context.Background(), "sub_1")
			},
			expectMethod: http.MethodPost,
			expectPath:   "/subscriptions/sub_1/resume",
			expectBody:   map[string]interface{}{"resume_at": "now"},
		},
		{
			name: "cancel",
			call: func(c *Client) (*ports.RemoteSubscription, error) {
				return c.CancelSubscription(context.Background(), "sub_1", false)
			},
			expectMethod: http.MethodPost,
			expectPath:   "/subscriptions/sub_1/cancel",
			expectBody:   map[string]interface{}{"cancel_at_cycle_end": float64(0)},
		},
		{
			name: "update plan",
			call: func(c *Client) (*ports.RemoteSubscription, error) {
				return c.UpdateSubscription(context.Background(), "sub_1", ports.UpdateSubscriptionRequest{PlanID: "plan_99"})
			},
			expectMethod: http.MethodPatch,
			expectPath:   "/subscriptions/sub_1",
			expectBody:   map[string]interface{}{"plan_id": "plan_99"},
		},
		{
			name: "fetch",
			call: func(c *Client) (*ports.RemoteSubscription, error) {
				return c.FetchSubscription(context.Background(), "sub_1")
			},
			expectMethod: http.MethodGet,
			expectPath:   "/subscriptions/sub_1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := setupClientTest(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.expectMethod, r.Method)
				assert.Equal(t, tt.expectPath, r.URL.Path)
				if tt.expectBody != nil {
					assert.Equal(t, tt.expectBody, decodeBody(t, r))
				} else {
					assert.Empty(t, r.Header.Get("Content-Type"))
				}
				writeJSON(w, http.StatusOK, `{"id":"sub_1","status":"active","plan_id":"plan_1"}`)
			})

			sub, err := tt.call(client)
			require.NoError(t, err)
			assert.Equal(t, "sub_1", sub.ID)
		})
	}
}

func TestClient_CreateCustomer_DoesNotFailOnExisting(t *testing.T) {
	client := setupClientTest(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customers", r.URL.Path)
		body := decodeBody(t, r)
		assert.Equal(t, "0", body["fail_existing"])
		assert.Equal(t, "Asha", body["name"])
		assert.Equal(t, "", body["contact"])
		writeJSON(w, http.StatusOK, `{"id":"cust_1","name":"Asha","email":"asha@example.com"}`)
	})

	customer, err := client.CreateCustomer(context.Background(), ports.CreateCustomerRequest{
		Name:  "Asha",
		Email: "asha@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "cust_1", customer.ID)
}

func TestClient_CreateOrder_ExtraOverrides(t *testing.T) {
	client := setupClientTest(t, func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		assert.EqualValues(t, 50000, body["amount"])
		assert.Equal(t, "USD", body["currency"])
		assert.Equal(t, "receipt_1_1744156800", body["receipt"])
		writeJSON(w, http.StatusOK, `{"id":"order_1","amount":50000,"currency":"USD","status":"created"}`)
	})

	order, err := client.CreateOrder(context.Background(), ports.CreateOrderRequest{
		Amount:   50000,
		Currency: "INR",
		Receipt:  "receipt_1_1744156800",
		Extra:    map[string]interface{}{"currency": "USD"},
	})
	require.NoError(t, err)
	assert.Equal(t, "order_1", order.ID)
	assert.Equal(t, "USD", order.Currency)
}

func TestClient_CreateOrder_RejectsNonPositiveAmount(t *testing.T) {
	client := setupClientTest(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := client.CreateOrder(context.Background(), ports.CreateOrderRequest{Amount: 0})
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestClient_CapturePayment(t *testing.T) {
	client := setupClientTest(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments/pay_1/capture", r.URL.Path)
		body := decodeBody(t, r)
		assert.EqualValues(t, 49900, body["amount"])
		assert.Equal(t, "INR", body["currency"])
		writeJSON(w, http.StatusOK, `{"id":"pay_1","amount":49900,"currency":"INR","status":"captured","captured":true}`)
	})

	payment, err := client.CapturePayment(context.Background(), "pay_1", ports.CapturePaymentRequest{Amount: 49900, Currency: "INR"})
	require.NoError(t, err)
	assert.True(t, payment.Captured)
	assert.Equal(t, "captured", payment.Status)
}

func TestClient_CreateInvoice(t *testing.T) {
	expireBy := time.Date(2025, 5, 9, 0, 0, 0, 0, time.UTC)

	client := setupClientTest(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/invoices", r.URL.Path)
		body := decodeBody(t, r)
		assert.Equal(t, "invoice", body["type"])
		assert.Equal(t, "cust_1", body["customer_id"])
		assert.Equal(t, "sub_1", body["subscription_id"])
		assert.EqualValues(t, 1, body["sms_notify"])
		assert.EqualValues(t, 1, body["email_notify"])
		assert.EqualValues(t, expireBy.Unix(), body["expire_by"])

		items := body["line_items"].([]interface{})
		require.Len(t, items, 1)
		item := items[0].(map[string]interface{})
		assert.EqualValues(t, 10000, item["amount"])
		assert.Equal(t, "Item", item["name"])

		writeJSON(w, http.StatusOK, `{"id":"inv_1","status":"issued","amount":10000,"currency":"INR","customer_id":"cust_1","subscription_id":"sub_1","expire_by":1746748800,"date":1744156800,"paid_at":null,"cancelled_at":0,"line_items":[{"id":"li_1","name":"Item","amount":10000,"currency":"INR","quantity":1}]}`)
	})

	inv, err := client.CreateInvoice(context.Background(), ports.CreateRemoteInvoiceRequest{
		CustomerID:     "cust_1",
		SubscriptionID: "sub_1",
		Description:    "Invoice for subscription sub_1",
		SMSNotify:      true,
		EmailNotify:    true,
		ExpireBy:       &expireBy,
		LineItems:      []ports.RemoteLineItem{{Name: "Item", Amount: 10000, Currency: "INR", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "inv_1", inv.ID)
	assert.Equal(t, int64(10000), inv.Amount)
	require.NotNil(t, inv.ExpireBy)
	assert.True(t, inv.ExpireBy.Equal(expireBy))
	require.NotNil(t, inv.IssuedAt)
	assert.Nil(t, inv.PaidAt)
	assert.Nil(t, inv.CancelledAt)
	require.Len(t, inv.LineItems, 1)
	assert.Equal(t, "li_1", inv.LineItems[0].ID)
}

func TestClient_InvoiceTransitions(t *testing.T) {
	for _, action := range []string{"issue", "cancel"} {
		t.Run(action, func(t *testing.T) {
			client := setupClientTest(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/invoices/inv_1/"+action, r.URL.Path)
				writeJSON(w, http.StatusOK, `{"id":"inv_1","status":"issued"}`)
			})

			var err error
			if action == "issue" {
				_, err = client.IssueInvoice(context.Background(), "inv_1")
			} else {
				_, err = client.CancelInvoice(context.Background(), "inv_1")
			}
			require.NoError(t, err)
		})
	}
}

func TestClient_ErrorEnvelope(t *testing.T) {
	tests := []struct {
		name           string
		status         int
		body           string
		expectCode     string
		expectCategory pkgerrors.ErrorCategory
		expectField    string
		expectReason   string
	}{
		{
			name:           "bad request",
			status:         http.StatusBadRequest,
			body:           `{"error":{"code":"BAD_REQUEST_ERROR","description":"The id provided does not exist","field":"id","source":"business","step":"payment_initiation","reason":"input_validation_failed","metadata":{}}}`,
			expectCode:     "BAD_REQUEST_ERROR",
			expectCategory: pkgerrors.CategoryInvalidRequest,
			expectField:    "id",
			expectReason:   "input_validation_failed",
		},
		{
			name:           "authentication",
			status:         http.StatusUnauthorized,
			body:           `{"error":{"code":"BAD_REQUEST_ERROR","description":"Authentication failed"}}`,
			expectCode:     "BAD_REQUEST_ERROR",
			expectCategory: pkgerrors.CategoryAuthentication,
		},
		{
			name:           "server error without envelope",
			status:         http.StatusBadGateway,
			body:           `<html>bad gateway</html>`,
			expectCode:     "GATEWAY_ERROR",
			expectCategory: pkgerrors.CategorySystemError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := setupClientTest(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})

			_, err := client.FetchSubscription(context.Background(), "sub_missing")
			require.Error(t, err)

			gwErr, ok := pkgerrors.AsGatewayError(err)
			require.True(t, ok)
			assert.Equal(t, tt.expectCode, gwErr.Code)
			assert.Equal(t, tt.expectCategory, gwErr.Category)
			assert.Equal(t, tt.status, gwErr.StatusCode)
			assert.Equal(t, tt.expectField, gwErr.Field)
			assert.Equal(t, tt.expectReason, gwErr.Reason)
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	transportErr := errors.New("dial tcp: connection refused")
	httpClient := mocks.NewMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return nil, transportErr
	})
	logger := mocks.NewMockLogger()
	client := NewClient(Config{KeyID: "k", KeySecret: "s", BaseURL: "http://razorpay.invalid"}, httpClient, logger)

	_, err := client.FetchInvoice(context.Background(), "inv_1")
	require.Error(t, err)

	gwErr, ok := pkgerrors.AsGatewayError(err)
	require.True(t, ok)
	assert.Equal(t, pkgerrors.CategoryNetworkError, gwErr.Category)
	assert.ErrorIs(t, err, transportErr)
	assert.Len(t, httpClient.Calls, 1)
	assert.Len(t, logger.ErrorCalls, 1)
}

func TestClient_DecodeError(t *testing.T) {
	client := setupClientTest(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"id":`)
	})

	_, err := client.FetchCustomer(context.Background(), "cust_1")
	gwErr, ok := pkgerrors.AsGatewayError(err)
	require.True(t, ok)
	assert.Equal(t, pkgerrors.CategoryDecodeError, gwErr.Category)
}

func TestClient_RequiresIdentifiers(t *testing.T) {
	client := setupClientTest(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	ctx := context.Background()

	_, err := client.FetchSubscription(ctx, "")
	assert.True(t, pkgerrors.IsValidationError(err))
	_, err = client.FetchInvoice(ctx, "")
	assert.True(t, pkgerrors.IsValidationError(err))
	_, err = client.FetchPlan(ctx, "")
	assert.True(t, pkgerrors.IsValidationError(err))
	_, err = client.FetchPayment(ctx, "")
	assert.True(t, pkgerrors.IsValidationError(err))
	_, err = client.CreateInvoice(ctx, ports.CreateRemoteInvoiceRequest{})
	assert.True(t, pkgerrors.IsValidationError(err))
}
