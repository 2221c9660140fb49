package dto

import "net/http"

// Error codes returned in the "error.code" field of failed responses.
// Domain errors keep their own code; the HTTP layer adds the rest.

// Validation error codes
const (
	ErrCodeInvalidInput    = "INVALID_INPUT"
	ErrCodeInvalidQuantity = "INVALID_QUANTITY"
	ErrCodeInvalidStatus   = "INVALID_STATUS"
	ErrCodeInvalidTenant   = "INVALID_TENANT"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "TOKEN_INVALID"
)

// Resource error codes
const (
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeOrderNotFound    = "ORDER_NOT_FOUND"
	ErrCodeReturnNotFound   = "RETURN_NOT_FOUND"
	ErrCodeCustomerNotFound = "CUSTOMER_NOT_FOUND"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
)

// Conflict error codes
const (
	ErrCodeAlreadyExists       = "ALREADY_EXISTS"
	ErrCodeIdentityConflict    = "CUSTOMER_IDENTITY_CONFLICT"
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	ErrCodeDuplicateRequest    = "DUPLICATE_REQUEST"
)

// Business rule error codes
const (
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeInvalidState      = "INVALID_STATE"
)

// Transport error codes
const (
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	ErrCodeRateLimited     = "RATE_LIMIT_EXCEEDED"
	ErrCodeRequestTimeout  = "REQUEST_TIMEOUT"
	ErrCodeInternal        = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// Validation errors -> 400 Bad Request
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidQuantity: http.StatusBadRequest,
	ErrCodeInvalidStatus:   http.StatusBadRequest,
	ErrCodeInvalidTenant:   http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeOrderNotFound:    http.StatusNotFound,
	ErrCodeReturnNotFound:   http.StatusNotFound,
	ErrCodeCustomerNotFound: http.StatusNotFound,
	ErrCodeProductNotFound:  http.StatusNotFound,

	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeIdentityConflict:    http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeDuplicateRequest:    http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInsufficientStock: http.StatusUnprocessableEntity,
	ErrCodeInvalidState:      http.StatusUnprocessableEntity,

	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeRequestTimeout:  http.StatusGatewayTimeout,
	ErrCodeInternal:        http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// errorCodeAliases folds codes produced by libraries or older callers
// into the public set
var errorCodeAliases = map[string]string{
	"VALIDATION_ERROR":      ErrCodeInvalidInput,
	"BAD_REQUEST":           ErrCodeInvalidInput,
	"INVALID_JSON":          ErrCodeInvalidInput,
	"OPTIMISTIC_LOCK_ERROR": ErrCodeConcurrencyConflict,
	"INVALID_TOKEN":         ErrCodeTokenInvalid,
}

// NormalizeErrorCode converts an alias to its public code.
// Unknown codes are collapsed to INTERNAL_ERROR so storage or driver
// codes never leak to clients.
func NormalizeErrorCode(code string) string {
	if alias, ok := errorCodeAliases[code]; ok {
		return alias
	}
	if _, ok := ErrorCodeHTTPStatus[code]; ok {
		return code
	}
	return ErrCodeInternal
}
