// Package models defines the data transfer objects shared between the
// API client, the session manager, and the development server.
package models

// User is the account snapshot returned by the auth API.
//
// The client treats it as immutable: login, register, and profile updates
// replace the whole value, individual fields are never patched in place.
// Timestamps stay in the wire format (ISO-8601 strings) so a persisted
// snapshot re-hydrates byte-for-byte.
type User struct {
	ID                 string  `json:"id"`
	Email              string  `json:"email"`
	Name               string  `json:"name"`
	Age                int     `json:"age,omitempty"`
	Profession         string  `json:"profession,omitempty"`
	City               string  `json:"city,omitempty"`
	MonthlyIncome      float64 `json:"monthlyIncome,omitempty"`
	IsActive           bool    `json:"isActive"`
	AccountCreatedDate string  `json:"accountCreatedDate,omitempty"`
	LastLogin          string  `json:"lastLogin,omitempty"`
}

// AuthTokens is the bearer credential pair issued on login, register and
// refresh. All three fields are opaque to the client; ExpiresIn in
// particular is carried as the string the server sent and never parsed.
type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn,omitempty"`
}
