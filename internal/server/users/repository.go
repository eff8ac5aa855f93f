// Package users holds the account store and the auth service of the dev
// server.
package users

import "context"

// Repository is the persistence surface for accounts. Lookups return
// common.ErrorNotFound when no row matches.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
}
