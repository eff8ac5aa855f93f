// Package common contains shared constants and sentinel errors used across
// the client and server layers. Callers should use errors.Is to match these
// values; layers wrap them with fmt.Errorf("...: %w", err) to add context.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors surfaced by the API.
	ErrorInvalidCredentials = errors.New("invalid credentials")
	ErrorAlreadyExists      = errors.New("already exists")
	ErrorValidation         = errors.New("validation failed")
	ErrorInvalidToken       = errors.New("invalid token")

	// Token lifecycle errors.
	ErrorTokenExpired        = errors.New("token expired")
	ErrorRefreshTokenExpired = errors.New("refresh token expired")
)
