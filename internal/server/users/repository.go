// Package users implements the credential store: registration and password
// verification over a pluggable repository.
package users

import (
	"context"
)

// Repository persists registered users. Create returns
// common.ErrorAlreadyExists when the username is taken; GetByName returns
// common.ErrorNotFound for unknown usernames.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByName(ctx context.Context, name string) (*User, error)
}
