// Package common defines shared sentinel errors used across the daylist
// server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal  = errors.New("internal error")
	ErrorForbidden = errors.New("forbidden")

	// Validation / registration / login errors.
	ErrorValidation         = errors.New("validation error")
	ErrorInvalidCredentials = errors.New("invalid username or password")
	ErrorDuplicateUsername  = errors.New("username already taken")

	// Session errors (missing, malformed or expired token).
	ErrorUnauthenticated = errors.New("unauthenticated")
	ErrInvalidToken      = errors.New("invalid token")
	ErrTokenExpired      = errors.New("token expired")
)
