package dto

import "net/http"

// Error codes shared between the domain layer and the HTTP surface.
// Domain errors carry these codes directly; the table below decides the
// response status.
const (
	ErrCodeInternal     = "INTERNAL"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"

	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeAlreadyExists       = "ALREADY_EXISTS"
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"

	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeInvalidQuantity   = "INVALID_QUANTITY"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeEmptyCart         = "EMPTY_CART"
	ErrCodeInvalidState      = "INVALID_STATE"

	ErrCodeInvalidName     = "INVALID_NAME"
	ErrCodeInvalidEmail    = "INVALID_EMAIL"
	ErrCodeInvalidPrice    = "INVALID_PRICE"
	ErrCodeInvalidUser     = "INVALID_USER"
	ErrCodeInvalidClient   = "INVALID_CLIENT"
	ErrCodeInvalidProducer = "INVALID_PRODUCER"
	ErrCodeInvalidCategory = "INVALID_CATEGORY"
	ErrCodeInvalidOrder    = "INVALID_ORDER"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidInput:      http.StatusBadRequest,
	ErrCodeInvalidQuantity:   http.StatusBadRequest,
	ErrCodeInsufficientStock: http.StatusBadRequest,
	ErrCodeEmptyCart:         http.StatusBadRequest,

	ErrCodeInvalidName:     http.StatusBadRequest,
	ErrCodeInvalidEmail:    http.StatusBadRequest,
	ErrCodeInvalidPrice:    http.StatusBadRequest,
	ErrCodeInvalidUser:     http.StatusBadRequest,
	ErrCodeInvalidClient:   http.StatusBadRequest,
	ErrCodeInvalidProducer: http.StatusBadRequest,
	ErrCodeInvalidCategory: http.StatusBadRequest,
	ErrCodeInvalidOrder:    http.StatusBadRequest,

	ErrCodeInvalidState: http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
