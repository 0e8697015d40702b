package services

import (
	"fmt"
	"strings"

	"github.com/collectionsdesk/paxcash/pkg/core/validation"
)

// ValidationError carries the per-field messages for a rejected payload.
// The caller fixes the input and resubmits; no state was touched.
type ValidationError struct {
	Fields validation.FieldErrors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// PermissionError means the acting user's role or the activation gate
// disallowed the operation
type PermissionError struct {
	Reason string
}

func (e *PermissionError) Error() string {
	return "permission denied: " + e.Reason
}

// NotFoundError means a referenced record does not exist
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func validationFailed(errs validation.FieldErrors) error {
	return &ValidationError{Fields: errs}
}
