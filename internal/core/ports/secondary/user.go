package secondary

import (
	"context"

	"gitlab.com/bugfix-arena.net/internal/domain"
)

type UserPort interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
