// Package session implements the durable session record store: a small
// key-value table holding the persisted user snapshot and token pair under
// the keys "user", "access_token" and "refresh_token".
package session

import "context"

// Repository is the storage surface the session manager writes through.
// Get returns ("", nil) when the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
