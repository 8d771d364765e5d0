package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no record matches within the caller's
// restaurant scope. A record owned by another restaurant and a record that
// does not exist are indistinguishable to the caller.
var ErrNotFound = errors.New("not found")

// ValidationError reports missing or malformed input. Validation runs before
// any write, so a failed validation never reaches the store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
