// Package service implements the core application logic: list
// ownership management and place recurrence management. Services sit
// between the HTTP handlers and the repositories; they validate
// input, enforce uniqueness and ownership, and translate repository
// failures into a small error taxonomy.
package service

import (
	"errors"
	"fmt"
)

// The four failure classes surfaced to callers. Handlers map these to
// HTTP status codes with errors.Is; anything wrapping ErrStorage must
// not leak driver detail to the client.
var (
	ErrValidation = errors.New("invalid input")
	ErrConflict   = errors.New("already exists")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage failure")
)

// invalid wraps a validation failure with its detail.
func invalid(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// conflictf builds a ConflictError with a caller-facing message.
func conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// notFoundf builds a NotFoundError with a caller-facing message.
func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// storage wraps an unexpected repository error.
func storage(err error) error {
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
