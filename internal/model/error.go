package model

import (
	"fmt"
	"sort"
	"strings"
)

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeCartNotFound     = "CART_NOT_FOUND"
	ErrCodeCartItemNotFound = "CART_ITEM_NOT_FOUND"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

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
	ErrProductNotFound  = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrCartNotFound     = NewDomainError(ErrCodeCartNotFound, "Shopping cart not found")
	ErrCartItemNotFound = NewDomainError(ErrCodeCartItemNotFound, "Cart item not found")
)

// ValidationError maps field names to messages. It is rendered verbatim as
// the 400 response body, so messages are part of the API contract.
type ValidationError map[string]string

func (e ValidationError) Error() string {
	fields := make([]string, 0, len(e))
	for field, msg := range e {
		fields = append(fields, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, "; ")
}
