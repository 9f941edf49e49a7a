package errors

import (
	"errors"
	"fmt"
)

var (
	// Catalog errors
	ErrProductNotFound  = errors.New("product not found in catalog")
	ErrInvalidProductID = errors.New("invalid product id")

	// Checkout session errors
	ErrSessionNotFound = errors.New("checkout session not found")
	ErrSessionMetadata = errors.New("checkout session metadata is missing required keys")

	// Order errors
	ErrOrderNotFound          = errors.New("order not found")
	ErrInvalidStateTransition = errors.New("invalid order state transition")

	// Processor errors
	ErrProcessorUnavailable = errors.New("payment processor unavailable")
	ErrProcessorRejected    = errors.New("request rejected by payment processor")

	// Store errors
	ErrStoreUnavailable = errors.New("catalog store unavailable")

	// Auth errors
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("insufficient permissions")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidInput     = errors.New("invalid input")
)

// DomainError wraps errors with additional context
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
