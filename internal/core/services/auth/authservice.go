package auth

import (
	"context"

	"gitlab.com/bugfix-arena.net/internal/domain"
)

type IAuthService interface {
	// Login checks the password and issues a signed token
	Login(ctx context.Context, username, password string) (*domain.LoginResponse, error)

	// Authenticate validates a token and returns its claims
	Authenticate(ctx context.Context, token string) (*domain.AuthClaims, error)
}
