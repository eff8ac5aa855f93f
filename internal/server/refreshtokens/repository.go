package refreshtokens

import (
	"context"
	"time"
)

// RefreshToken is a single-use server-side token record. Tokens are
// rotated on every refresh and revoked on logout.
type RefreshToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

type Repository interface {
	Create(ctx context.Context, token *RefreshToken) error
	Find(ctx context.Context, token string) (*RefreshToken, error)
	Delete(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID string) error
}
