// Package store provides persistence for compose documents: loading YAML
// files into comment-preserving yaml.v3 node trees and writing them back.
package store

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrNotFound is returned when a required file is missing.
	ErrNotFound = errors.New("file not found")

	// ErrInvalidYAML is returned when a file cannot be parsed.
	ErrInvalidYAML = errors.New("invalid YAML syntax")
)

// StoreError wraps errors with additional context.
type StoreError struct {
	Op      string // Operation that failed (e.g., "Load")
	Path    string // File path if applicable
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(op, path, message string, err error) *StoreError {
	return &StoreError{
		Op:      op,
		Path:    path,
		Message: message,
		Err:     err,
	}
}
