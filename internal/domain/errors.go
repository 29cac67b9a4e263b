package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned when caller input is missing or malformed
	ErrValidation = errors.New("validation error")

	// ErrUnauthorized is returned when a credential is missing or does not match the subject
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned by operations that need an existing record to proceed.
	// Plain lookups report absence with an empty result instead.
	ErrNotFound = errors.New("not found")

	// ErrInvalidSignature is returned when a wallet signature cannot be recovered
	ErrInvalidSignature = errors.New("invalid signature")
)

// Validationf wraps ErrValidation with a caller-facing message
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Unauthorizedf wraps ErrUnauthorized with a caller-facing message
func Unauthorizedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnauthorized, fmt.Sprintf(format, args...))
}

// NotFoundf wraps ErrNotFound with a caller-facing message
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}
