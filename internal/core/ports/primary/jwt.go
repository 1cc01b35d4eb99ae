package primary

import (
	"context"

	"gitlab.com/bugfix-arena.net/internal/domain"
)

type JWTService interface {
	GenerateTokenHMAC(ctx context.Context, method string, claims domain.AuthClaims) (string, error)
	VerifyTokenHMAC(ctx context.Context, token string) (*domain.AuthClaims, error)
	EncryptPassword(ctx context.Context, password string) (string, error)
	VerifyPassword(ctx context.Context, passwordHash string, pwd string) (bool, error)
}
