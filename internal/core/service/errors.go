// Package service contains pure functions for building compose service
// definitions. This is part of the Functional Core - construction normalizes
// raw user input, projection derives the YAML mapping. No I/O.
package service

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// Input validation errors
	ErrEmptyName      = errors.New("service name is required")
	ErrEmptyImage     = errors.New("service image is required")
	ErrEmptyPath      = errors.New("container path is required")
	ErrInvalidPort    = errors.New("invalid port")
	ErrInvalidRestart = errors.New("invalid restart policy")
)

// FieldError wraps errors with the input field that failed validation.
type FieldError struct {
	Field   string // e.g., "internal_port"
	Message string
	Err     error
}

func (e *FieldError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// NewFieldError creates a new FieldError.
func NewFieldError(field, message string, err error) *FieldError {
	return &FieldError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
