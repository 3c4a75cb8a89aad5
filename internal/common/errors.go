// Package common defines shared constants and sentinel errors used across
// pdfchat components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Registration conflicts. Username is checked before email, so a
	// request colliding on both fields reports the username conflict.
	ErrDuplicateUsername = errors.New("username already registered")
	ErrDuplicateEmail    = errors.New("email already registered")

	// Authentication failures. ErrInvalidCredentials covers both an
	// unknown username and a wrong password so callers cannot probe for
	// account existence.
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUnauthenticated    = errors.New("unauthenticated")

	// Authorization gate, distinct from authentication failures so the
	// caller can present a different message.
	ErrAccountInactive = errors.New("account is inactive")

	// Validation errors for malformed input.
	ErrorValidation = errors.New("validation error")

	// Residual category for storage/hashing faults. Surfaced without
	// internal detail.
	ErrorInternal = errors.New("internal error")
)
