// Package errs defines the error taxonomy shared by the store, the services
// and the HTTP handlers.
package errs

import (
	"errors"
	"fmt"
)

// Sentinels. Typed errors below unwrap to one of these so callers can
// branch with errors.Is.
var (
	// ErrValidation indicates malformed or missing input.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates a lookup by id or username with no match.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness violation (duplicate username).
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized indicates a credential mismatch on login or reset.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidTransition indicates a complaint status change that would move
	// the lifecycle backwards or out of a terminal status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrStorageRead indicates corrupt persisted data. The store logs it and
	// falls back to an empty value; it never reaches callers.
	ErrStorageRead = errors.New("storage read failed")
)

// ValidationError reports a rule violated by one input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error { return ErrValidation }

// ConflictError reports a duplicate on a unique key.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) Unwrap() error { return ErrConflict }

// AuthError reports a failed credential check.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Unwrap() error { return ErrUnauthorized }

// Validation builds a ValidationError for field.
func Validation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Conflict builds a ConflictError.
func Conflict(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// Auth builds an AuthError.
func Auth(message string) *AuthError {
	return &AuthError{Message: message}
}

// Transition builds an ErrInvalidTransition error naming both statuses.
func Transition(from, to string) error {
	return fmt.Errorf("%w: %q -> %q", ErrInvalidTransition, from, to)
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsConflict reports whether err carries a ConflictError.
func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

// IsAuth reports whether err carries an AuthError.
func IsAuth(err error) bool {
	var a *AuthError
	return errors.As(err, &a)
}
