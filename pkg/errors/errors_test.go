package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryForStatus(t *testing.T) {
	tests := []struct {
		status   int
		expected ErrorCategory
	}{
		{http.StatusBadRequest, CategoryInvalidRequest},
		{http.StatusUnauthorized, CategoryAuthentication},
		{http.StatusForbidden, CategoryAuthentication},
		{http.StatusNotFound, CategoryNotFound},
		{http.StatusTooManyRequests, CategoryRateLimited},
		{http.StatusInternalServerError, CategorySystemError},
		{http.StatusBadGateway, CategorySystemError},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.expected, CategoryForStatus(tt.status))
		})
	}
}

func TestGatewayError_Error(t *testing.T) {
	err := NewGatewayError("BAD_REQUEST_ERROR", "The id provided does not exist", CategoryInvalidRequest)
	err.StatusCode = http.StatusBadRequest
	err.Field = "id"

	assert.Equal(t, "BAD_REQUEST_ERROR: The id provided does not exist (field: id) [http 400]", err.Error())
}

func TestAsGatewayError_Wrapped(t *testing.T) {
	transport := errors.New("connection refused")
	err := fmt.Errorf("fetch subscription: %w", NewNetworkError("subscription.fetch", transport))

	gwErr, ok := AsGatewayError(err)
	require.True(t, ok)
	assert.Equal(t, CategoryNetworkError, gwErr.Category)
	assert.True(t, errors.Is(err, transport))
	assert.True(t, IsGatewayError(err))
	assert.False(t, IsGatewayError(errors.New("other")))
}

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("decode: %w", NewValidationError("plan_id", "is required"))

	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "validation error on field 'plan_id': is required")
}
