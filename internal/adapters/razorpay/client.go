package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/squareboat/razorpay-cashier/internal/domain/ports"
	pkgerrors "github.com/squareboat/razorpay-cashier/pkg/errors"
	"github.com/squareboat/razorpay-cashier/pkg/observability"
)

// DefaultBaseURL is the Razorpay REST API root
const DefaultBaseURL = "https://api.razorpay.com/v1"

// Config holds the Razorpay API credentials
type Config struct {
	KeyID     string
	KeySecret string
	BaseURL   string // defaults to DefaultBaseURL
}

// Client implements ports.Gateway against the Razorpay REST API
type Client struct {
	config     Config
	httpClient ports.HTTPClient
	logger     ports.Logger
}

var _ ports.Gateway = (*Client)(nil)

// NewClient creates a new Razorpay client with dependency injection
func NewClient(config Config, httpClient ports.HTTPClient, logger ports.Logger) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	return &Client{
		config:     config,
		httpClient: httpClient,
		logger:     logger,
	}
}

// errorEnvelope is the body Razorpay returns for every non-2xx response
type errorEnvelope struct {
	Error struct {
		Metadata    map[string]interface{} `json:"metadata"`
		Code        string                 `json:"code"`
		Description string                 `json:"description"`
		Field       string                 `json:"field"`
		Source      string                 `json:"source"`
		Step        string                 `json:"step"`
		Reason      string                 `json:"reason"`
	} `json:"error"`
}

// makeRequest performs one authenticated JSON call and decodes the response into out.
// operation names the call in logs and metrics (e.g. "subscription.fetch").
func (c *Client) makeRequest(ctx context.Context, operation, method, endpoint string, request interface{}, out interface{}) error {
	var body io.Reader
	if request != nil {
		payload, err := json.Marshal(request)
		if err != nil {
			return fmt.Errorf("failed to marshal %s request: %w", operation, err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", operation, err)
	}

	httpReq.SetBasicAuth(c.config.KeyID, c.config.KeySecret)
	httpReq.Header.Set("Accept", "application/json")
	if request != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("making request to Razorpay",
		ports.String("operation", operation),
		ports.String("method", method),
		ports.String("endpoint", endpoint),
	)

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		observability.RecordGatewayRequest(operation, "error", time.Since(start))
		c.logger.Error("Razorpay request failed",
			ports.String("operation", operation),
			ports.Err(err),
		)
		return pkgerrors.NewNetworkError(operation, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	observability.RecordGatewayRequest(operation, strconv.Itoa(httpResp.StatusCode), time.Since(start))
	if err != nil {
		return pkgerrors.NewNetworkError(operation, fmt.Errorf("failed to read response body: %w", err))
	}

	if httpResp.StatusCode >= http.StatusBadRequest {
		gwErr := decodeError(httpResp.StatusCode, respBody)
		c.logger.Warn("Razorpay returned an error",
			ports.String("operation", operation),
			ports.Int("status", httpResp.StatusCode),
			ports.String("code", gwErr.Code),
			ports.String("description", gwErr.Description),
		)
		return gwErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		gwErr := pkgerrors.NewGatewayError("DECODE_ERROR", fmt.Sprintf("failed to decode %s response", operation), pkgerrors.CategoryDecodeError)
		gwErr.StatusCode = httpResp.StatusCode
		gwErr.Err = err
		return gwErr
	}

	return nil
}

func decodeError(status int, body []byte) *pkgerrors.GatewayError {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error.Code == "" {
		gwErr := pkgerrors.NewGatewayError("GATEWAY_ERROR", http.StatusText(status), pkgerrors.CategoryForStatus(status))
		gwErr.StatusCode = status
		return gwErr
	}

	gwErr := pkgerrors.NewGatewayError(envelope.Error.Code, envelope.Error.Description, pkgerrors.CategoryForStatus(status))
	gwErr.StatusCode = status
	gwErr.Field = envelope.Error.Field
	gwErr.Source = envelope.Error.Source
	gwErr.Step = envelope.Error.Step
	gwErr.Reason = envelope.Error.Reason
	for k, v := range envelope.Error.Metadata {
		gwErr.Details[k] = v
	}
	return gwErr
}

// withExtra merges caller pass-through parameters into a request body; caller keys win
func withExtra(body map[string]interface{}, extra map[string]interface{}) map[string]interface{} {
	for k, v := range extra {
		body[k] = v
	}
	return body
}

func boolFlag(v bool) int {
	if v {
		return 1
	}
	return 0
}
