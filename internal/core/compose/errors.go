// Package compose contains pure functions for editing Docker Compose
// documents. This is part of the Functional Core - every mutator takes a
// loaded yaml.v3 document tree and modifies it in memory; no I/O happens
// here. Edits are surgical: untouched keys, ordering and comments survive.
package compose

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// Document structure errors
	ErrMissingServices = errors.New("document has no top-level 'services' mapping")
	ErrNotMapping      = errors.New("section is not a mapping")
	ErrNotSequence     = errors.New("section is not a sequence")

	// Mutation errors
	ErrServiceExists = errors.New("service already exists")
	ErrNoSuchService = errors.New("service not found")
)

// SectionError wraps errors with the top-level section that was malformed
// or missing.
type SectionError struct {
	Section string // e.g., "services"
	Message string
	Err     error
}

func (e *SectionError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("%s: %s", e.Section, e.Message)
	}
	return e.Message
}

func (e *SectionError) Unwrap() error {
	return e.Err
}

// NewSectionError creates a new SectionError.
func NewSectionError(section, message string, err error) *SectionError {
	return &SectionError{
		Section: section,
		Message: message,
		Err:     err,
	}
}
