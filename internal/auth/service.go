package auth

import (
	"context"
	"errors"
	"time"

	"bookstore/internal/platform/crypto"
	"bookstore/internal/user"
)

var (
	// ErrUnauthorized is returned when the credentials do not match an
	// account.
	ErrUnauthorized = errors.New("unauthorized")
)

const tokenTTL = 24 * time.Hour

// Service issues tokens for registered accounts.
type Service struct {
	secret string
	users  user.Repository
}

// NewService creates a new auth service.
func NewService(secret string, users user.Repository) *Service {
	return &Service{secret: secret, users: users}
}

// Register creates an account with the USER role.
func (s *Service) Register(ctx context.Context, email, username, password string) (user.User, error) {
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return user.User{}, err
	}

	u := user.User{
		Email:    email,
		Username: username,
		Password: hash,
	}
	if err := s.users.Create(ctx, &u); err != nil {
		return user.User{}, err
	}
	return u, nil
}

// Login verifies the credentials and returns a signed bearer token plus
// its lifetime in seconds.
func (s *Service) Login(ctx context.Context, email, password string) (string, int, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil || !crypto.VerifyPassword(u.Password, password) {
		return "", 0, ErrUnauthorized
	}

	token, err := crypto.GenerateToken(s.secret, u.ID, u.Role, tokenTTL)
	if err != nil {
		return "", 0, err
	}
	return token, int(tokenTTL.Seconds()), nil
}
