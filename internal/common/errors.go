// Package common defines shared constants and sentinel errors used across
// client and server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound        = errors.New("not found")
	ErrDuplicateUsername = errors.New("username already taken")

	// Service-level errors.
	ErrorInternal         = errors.New("internal error")
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Outcomes for protected resources. These are the only auth failures the
	// transport boundary may surface; the precise token errors below are
	// collapsed into ErrForbidden before they get there.
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")

	// Token verification errors (internal taxonomy).
	ErrMalformedToken = errors.New("malformed token")
	ErrTamperedToken  = errors.New("token signature mismatch")
	ErrTokenExpired   = errors.New("token expired")

	// Caller errors.
	ErrInvalidTTL = errors.New("token ttl must be positive")
)
