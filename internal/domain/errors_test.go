package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Error(t *testing.T) {
	err := NewDomainError(ErrorCodeSubscriptionNotFound, "subscription not found")
	assert.Equal(t, "SUBSCRIPTION_NOT_FOUND: subscription not found", err.Error())

	wrapped := WrapError(ErrorCodeDatabaseError, "update subscription", errors.New("connection reset"))
	assert.Equal(t, "INTERNAL_DATABASE_ERROR: update subscription: connection reset", wrapped.Error())
}

func TestDomainError_IsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("find subscription sub_123: %w", ErrSubscriptionNotFound)

	assert.True(t, errors.Is(err, ErrSubscriptionNotFound))
	assert.False(t, errors.Is(err, ErrInvoiceNotFound))
	assert.True(t, IsNotFoundError(err))
	assert.Equal(t, ErrorCodeSubscriptionNotFound, GetErrorCode(err))
}

func TestDomainError_WithDetailDoesNotMutateSentinel(t *testing.T) {
	detailed := ErrInvoiceNotFound.WithDetail("invoice_id", "inv_1")

	assert.Equal(t, "inv_1", detailed.Details["invoice_id"])
	assert.NotContains(t, ErrInvoiceNotFound.Details, "invoice_id")
	assert.True(t, errors.Is(detailed, ErrInvoiceNotFound))
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		isNotFound   bool
		isValidation bool
	}{
		{"subscription not found", ErrSubscriptionNotFound, true, false},
		{"invoice not found", ErrInvoiceNotFound, true, false},
		{"invalid invoice action", ErrInvoiceInvalidAction, false, true},
		{"customer required", ErrCustomerRequired, false, true},
		{"gateway", ErrGatewayError, false, false},
		{"plain error", errors.New("boom"), false, false},
		{"nil", nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isNotFound, IsNotFoundError(tt.err))
			assert.Equal(t, tt.isValidation, IsValidationError(tt.err))
		})
	}
}
