// Package common defines shared sentinel errors used across the lendkeeper
// layers. Callers should use errors.Is to match these values; services wrap
// them with fmt.Errorf("%w: ...") to add context while preserving the kind.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Validation errors: malformed or missing input, never retried.
	ErrValidation = errors.New("validation error")

	// Conflict errors: uniqueness violations and exhausted stock.
	ErrConflict = errors.New("conflict")

	// ErrOutOfStock is a specialization of ErrConflict: the book row exists
	// but has no available copies. errors.Is(err, ErrConflict) also holds.
	ErrOutOfStock = fmt.Errorf("%w: out of stock", ErrConflict)

	// Auth errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")

	// Generic internal flow control.
	ErrInternal = errors.New("internal error")
)
