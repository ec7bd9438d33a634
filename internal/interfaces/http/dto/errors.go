package dto

import "net/http"

// Error codes emitted by the HTTP layer itself. Domain services carry their
// own codes in shared.DomainError and are mapped through ErrorCodeHTTPStatus.
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeValidation is used when request binding or validation fails
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	// Validation -> 400 Bad Request
	ErrCodeValidation:          http.StatusBadRequest,
	"INVALID_INPUT":            http.StatusBadRequest,
	"INVALID_QUANTITY":         http.StatusBadRequest,
	"INVALID_THRESHOLD":        http.StatusBadRequest,
	"INVALID_TRANSACTION_TYPE": http.StatusBadRequest,
	"INVALID_PRICE":            http.StatusBadRequest,
	"INVALID_COST":             http.StatusBadRequest,
	"INVALID_SKU":              http.StatusBadRequest,
	"INVALID_BARCODE":          http.StatusBadRequest,
	"INVALID_NAME":             http.StatusBadRequest,
	"INVALID_CODE":             http.StatusBadRequest,
	"INVALID_DISCOUNT":         http.StatusBadRequest,
	"INVALID_AMOUNT":           http.StatusBadRequest,
	"INVALID_USERNAME":         http.StatusBadRequest,
	"INVALID_EMAIL":            http.StatusBadRequest,
	"INVALID_PASSWORD":         http.StatusBadRequest,
	"INVALID_ROLE":             http.StatusBadRequest,
	"INVALID_REASON":           http.StatusBadRequest,
	"INVALID_ACTOR":            http.StatusBadRequest,
	"INVALID_ACTION":           http.StatusBadRequest,
	"INVALID_MODULE":           http.StatusBadRequest,
	"NO_ITEMS":                 http.StatusBadRequest,

	// Auth
	ErrCodeUnauthorized:   http.StatusUnauthorized,
	ErrCodeForbidden:      http.StatusForbidden,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"TOKEN_ERROR":         http.StatusUnauthorized,
	"ACCOUNT_LOCKED":      http.StatusForbidden,
	"ACCOUNT_DEACTIVATED": http.StatusForbidden,
	"ACCOUNT_INACTIVE":    http.StatusForbidden,

	// Resources
	ErrCodeNotFound:  http.StatusNotFound,
	"USER_NOT_FOUND": http.StatusNotFound,
	"ALREADY_EXISTS": http.StatusConflict,

	// Conflicts
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"ALREADY_INITIALIZED":  http.StatusConflict,

	// Business rules -> 422 Unprocessable Entity
	"INSUFFICIENT_STOCK":   http.StatusUnprocessableEntity,
	"INSUFFICIENT_PAYMENT": http.StatusUnprocessableEntity,
	"CATEGORY_IN_USE":      http.StatusUnprocessableEntity,
	"MAIN_BRANCH":          http.StatusUnprocessableEntity,
	"INVALID_BRANCH":       http.StatusUnprocessableEntity,
	"INVALID_CATEGORY":     http.StatusUnprocessableEntity,
	"INVALID_PRODUCT":      http.StatusUnprocessableEntity,
	"SELF_DEACTIVATION":    http.StatusUnprocessableEntity,
	"INVALID_STATE":        http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
