package common

// Storage keys for the persisted session record. The three entries form one
// logical unit: they are written and cleared together, and a session with
// only some of them present is treated as corrupt.
const (
	StorageKeyUser         = "user"
	StorageKeyAccessToken  = "access_token"
	StorageKeyRefreshToken = "refresh_token"
)

// AuthorizationHeader carries the access token on authenticated requests,
// formatted as "Bearer <token>".
const AuthorizationHeader = "Authorization"
