// Package api implements the client for the personal finance auth API.
//
// Each operation performs exactly one HTTP round-trip and returns on
// failure; there are no retries at this layer. Transport failures are
// reported as ErrUnavailable, auth failures map to the sentinels in
// internal/common. Both are matchable with errors.Is.
package api

import (
	"context"

	"fintrack/internal/models"
)

// Client is the remote surface the session manager depends on.
//
// Login, Register and RefreshToken return the nested-envelope payload
// (tokens plus user); Profile and UpdateProfile return the user directly.
// Which decoding applies is fixed per endpoint, never inferred from the
// response body.
type Client interface {
	Register(ctx context.Context, name, email, password string, monthlyIncome float64) (*models.AuthTokens, *models.User, error)
	Login(ctx context.Context, email, password string) (*models.AuthTokens, *models.User, error)
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, name, email string) (*models.User, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	Logout(ctx context.Context) error
	RefreshToken(ctx context.Context, refreshToken string) (*models.AuthTokens, *models.User, error)

	// SetTokens seeds the bearer credentials, e.g. after the session
	// manager restored them from local storage.
	SetTokens(accessToken, refreshToken string)
}
