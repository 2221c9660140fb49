package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeInvalidQuantity, http.StatusBadRequest},
		{ErrCodeInvalidStatus, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeOrderNotFound, http.StatusNotFound},
		{ErrCodeReturnNotFound, http.StatusNotFound},
		{ErrCodeCustomerNotFound, http.StatusNotFound},
		{ErrCodeProductNotFound, http.StatusNotFound},
		{ErrCodeIdentityConflict, http.StatusConflict},
		{ErrCodeConcurrencyConflict, http.StatusConflict},
		{ErrCodeDuplicateRequest, http.StatusConflict},
		{ErrCodeInsufficientStock, http.StatusUnprocessableEntity},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodeInternal, http.StatusInternalServerError},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"VALIDATION_ERROR", ErrCodeInvalidInput},
		{"OPTIMISTIC_LOCK_ERROR", ErrCodeConcurrencyConflict},
		{"INVALID_TOKEN", ErrCodeTokenInvalid},
		{ErrCodeInsufficientStock, ErrCodeInsufficientStock},
		{ErrCodeOrderNotFound, ErrCodeOrderNotFound},
		{"DB_ERROR", ErrCodeInternal},
		{"", ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestErrorResponseJSON(t *testing.T) {
	resp := NewErrorResponse(ErrCodeInsufficientStock, "insufficient stock").WithDetails(map[string]any{"available": 3})

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"success":false,"error":{"code":"INSUFFICIENT_STOCK","message":"insufficient stock","details":{"available":3}}}`,
		string(data))

	plain, err := json.Marshal(NewErrorResponse(ErrCodeInvalidInput, "bad").WithDetails(nil))
	require.NoError(t, err)
	assert.NotContains(t, string(plain), "details")
}

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse(map[string]string{"name": "test"})

	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
	assert.Equal(t, resp, resp.WithDetails(map[string]any{"ignored": true}))
}
