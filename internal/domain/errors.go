package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a machine-readable error code
type ErrorCode string

const (
	// Subscription Errors (SUBSCRIPTION_*)
	ErrorCodeSubscriptionNotFound     ErrorCode = "SUBSCRIPTION_NOT_FOUND"
	ErrorCodeSubscriptionInvalidState ErrorCode = "SUBSCRIPTION_INVALID_STATE"

	// Invoice Errors (INVOICE_*)
	ErrorCodeInvoiceNotFound      ErrorCode = "INVOICE_NOT_FOUND"
	ErrorCodeInvoiceInvalidAction ErrorCode = "INVOICE_INVALID_ACTION"

	// Customer Errors (CUSTOMER_*)
	ErrorCodeCustomerRequired ErrorCode = "CUSTOMER_REQUIRED"

	// Validation Errors (VALIDATION_*)
	ErrorCodeValidationFailed        ErrorCode = "VALIDATION_FAILED"
	ErrorCodeValidationAmountInvalid ErrorCode = "VALIDATION_AMOUNT_INVALID"
	ErrorCodeValidationMissingField  ErrorCode = "VALIDATION_MISSING_FIELD"

	// Payment Gateway Errors (GATEWAY_*)
	ErrorCodeGatewayError ErrorCode = "GATEWAY_ERROR"

	// Internal Errors (INTERNAL_*)
	ErrorCodeInternalError ErrorCode = "INTERNAL_ERROR"
	ErrorCodeDatabaseError ErrorCode = "INTERNAL_DATABASE_ERROR"
)

// DomainError represents a structured domain error with error code and context
type DomainError struct {
	Err     error
	Details map[string]interface{}
	Code    ErrorCode
	Message string
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches another DomainError by code, so wrapped sentinels compare equal
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if errors.As(target, &other) {
		return e.Code == other.Code
	}
	return false
}

// WithDetail returns a copy of the error carrying an extra detail field.
// Sentinels are shared, so they are never mutated in place.
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	details := make(map[string]interface{}, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &DomainError{Err: e.Err, Details: details, Code: e.Code, Message: e.Message}
}

// NewDomainError creates a new domain error
func NewDomainError(code ErrorCode, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// WrapError wraps an existing error with a domain error code
func WrapError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Err:     err,
	}
}

// IsDomainError checks if an error is a DomainError with the given code
func IsDomainError(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error, returns empty string if not a DomainError
func GetErrorCode(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

// IsNotFoundError checks if an error represents a "not found" condition
func IsNotFoundError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeSubscriptionNotFound ||
		code == ErrorCodeInvoiceNotFound
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeValidationFailed ||
		code == ErrorCodeValidationAmountInvalid ||
		code == ErrorCodeValidationMissingField ||
		code == ErrorCodeInvoiceInvalidAction ||
		code == ErrorCodeCustomerRequired
}

var (
	ErrSubscriptionNotFound     = NewDomainError(ErrorCodeSubscriptionNotFound, "subscription not found")
	ErrSubscriptionInvalidState = NewDomainError(ErrorCodeSubscriptionInvalidState, "subscription is in invalid state for this operation")

	ErrInvoiceNotFound      = NewDomainError(ErrorCodeInvoiceNotFound, "invoice not found")
	ErrInvoiceInvalidAction = NewDomainError(ErrorCodeInvoiceInvalidAction, "invalid invoice action")

	ErrCustomerRequired = NewDomainError(ErrorCodeCustomerRequired, "customer id or customer details required")

	ErrValidationFailed        = NewDomainError(ErrorCodeValidationFailed, "validation failed")
	ErrValidationAmountInvalid = NewDomainError(ErrorCodeValidationAmountInvalid, "invalid amount")
	ErrValidationMissingField  = NewDomainError(ErrorCodeValidationMissingField, "required field missing")

	ErrGatewayError  = NewDomainError(ErrorCodeGatewayError, "payment gateway error")
	ErrInternalError = NewDomainError(ErrorCodeInternalError, "internal error")
	ErrDatabaseError = NewDomainError(ErrorCodeDatabaseError, "database error")
)
