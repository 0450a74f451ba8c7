package model

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError reports an unknown company id. Available lists every valid id
// in index order so callers can show it to the user.
type NotFoundError struct {
	ID        string
	Available []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Company with ID '%s' not found. Available companies: %s",
		e.ID, strings.Join(e.Available, ", "))
}

// NewNotFoundError builds a NotFoundError for id.
func NewNotFoundError(id string, available []string) *NotFoundError {
	return &NotFoundError{ID: id, Available: available}
}

// IsNotFound returns true if err (or any error in its chain) is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ValidationError reports a malformed request field. Retrying without changing
// the input is pointless.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid request: " + e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation returns true if err (or any error in its chain) is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
