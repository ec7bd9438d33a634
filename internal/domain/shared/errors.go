package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("VALIDATION_ERROR", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrAlreadyInitialized  = NewDomainError("ALREADY_INITIALIZED", "Stock record already initialized for this product and branch")
)

// InsufficientStockError is raised when a deduction would drive a branch's
// stock level below zero. It carries the shortfall so callers can report
// exactly how short the branch is.
type InsufficientStockError struct {
	ProductID string `json:"product_id"`
	BranchID  string `json:"branch_id"`
	Available int    `json:"available"`
	Requested int    `json:"requested"`
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: %d available, %d requested", e.Available, e.Requested)
}

// NewInsufficientStockError creates an insufficient stock error
func NewInsufficientStockError(productID, branchID string, available, requested int) *InsufficientStockError {
	return &InsufficientStockError{
		ProductID: productID,
		BranchID:  branchID,
		Available: available,
		Requested: requested,
	}
}

// ErrorCode extracts the domain error code from an error, if any
func ErrorCode(err error) string {
	switch e := err.(type) {
	case *DomainError:
		return e.Code
	case *InsufficientStockError:
		return "INSUFFICIENT_STOCK"
	default:
		return ""
	}
}
