package task

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTitle       = errors.New("task title cannot be empty")
	ErrInvalidStatus    = errors.New("invalid task status")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// ValidationError reports caller input that violates an entity invariant.
type ValidationError struct {
	Field string // Name of the offending field
	Err   error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// FormatError reports a persisted record that does not match the record contract.
type FormatError struct {
	ID    int    // Record ID, zero if unknown
	Field string // Record field that failed to decode
	Value string // Offending raw value
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("task %d: %s %q: %s", e.ID, e.Field, e.Value, e.Err)
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error {
	return e.Err
}
