package service

import (
	"errors"
	"fmt"

	"github.com/tickdesk/tickdesk/internal/repository"
)

var (
	// ErrForbidden is returned when the acting identity fails the
	// permission check for the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidTransition is returned when an update tries to move a
	// monotonic field backwards (paid yes -> no). No role bypasses it.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrInvalidCredentials is returned on login when the username is
	// unknown or the password does not match. The two cases are not
	// distinguished to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound mirrors the repository sentinel so callers can check
	// either layer with errors.Is.
	ErrNotFound = repository.ErrNotFound

	// ErrConflict is returned on uniqueness violations (company name,
	// username).
	ErrConflict = errors.New("conflict")
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

func invalidField(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
