package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCategory represents the category of error for handling
type ErrorCategory string

const (
	CategoryAuthentication ErrorCategory = "authentication"
	CategoryInvalidRequest ErrorCategory = "invalid_request"
	CategoryNotFound       ErrorCategory = "not_found"
	CategoryRateLimited    ErrorCategory = "rate_limited"
	CategorySystemError    ErrorCategory = "system_error"
	CategoryNetworkError   ErrorCategory = "network_error"
	CategoryDecodeError    ErrorCategory = "decode_error"
)

// GatewayError represents a payment gateway failure with detailed context
type GatewayError struct {
	Err         error
	Details     map[string]interface{}
	Code        string
	Description string
	Field       string
	Source      string
	Step        string
	Reason      string
	Category    ErrorCategory
	StatusCode  int
}

func (e *GatewayError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Description)
	if e.Field != "" {
		msg += fmt.Sprintf(" (field: %s)", e.Field)
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" [http %d]", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the transport error, if any
func (e *GatewayError) Unwrap() error {
	return e.Err
}

// NewGatewayError creates a new gateway error
func NewGatewayError(code, description string, category ErrorCategory) *GatewayError {
	return &GatewayError{
		Code:        code,
		Description: description,
		Category:    category,
		Details:     make(map[string]interface{}),
	}
}

// NewNetworkError wraps a transport failure that produced no gateway response
func NewNetworkError(operation string, err error) *GatewayError {
	return &GatewayError{
		Code:        "NETWORK_ERROR",
		Description: fmt.Sprintf("%s request failed", operation),
		Category:    CategoryNetworkError,
		Details:     make(map[string]interface{}),
		Err:         err,
	}
}

// CategoryForStatus maps an HTTP status returned by the gateway to an error category
func CategoryForStatus(status int) ErrorCategory {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return CategoryAuthentication
	case status == http.StatusNotFound:
		return CategoryNotFound
	case status == http.StatusTooManyRequests:
		return CategoryRateLimited
	case status >= 500:
		return CategorySystemError
	default:
		return CategoryInvalidRequest
	}
}

// IsGatewayError reports whether err wraps a GatewayError
func IsGatewayError(err error) bool {
	var gwErr *GatewayError
	return errors.As(err, &gwErr)
}

// AsGatewayError extracts the GatewayError wrapped by err
func AsGatewayError(err error) (*GatewayError, bool) {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr, true
	}
	return nil, false
}

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError reports whether err wraps a ValidationError
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
