package user

import (
	"context"
)

// Repository defines the contract for account storage.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (User, error)
}
