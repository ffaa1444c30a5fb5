// Package common defines sentinel errors shared across the LocalGem API
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Credential errors. Unknown email and wrong password both map to
	// ErrInvalidCredentials so callers cannot tell them apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token errors (malformed token, bad signature, or wrong secret class).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")

	// Validation errors surfaced at the API boundary.
	ErrValidation = errors.New("validation error")
)
