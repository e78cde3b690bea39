package usecase

import "errors"

// Token failures are collapsed to one user-facing message; the specific
// sentinel drives the HTTP status and the internal log line.
var (
	ErrTokenInvalid = errors.New("setup link is invalid or expired")
	ErrTokenExpired = errors.New("setup link has expired")
	ErrTokenUsed    = errors.New("setup link was already used")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNotFound           = errors.New("not found")
	ErrStatusTransition   = errors.New("order status can only move forward")
)
