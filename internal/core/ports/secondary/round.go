package secondary

import (
	"context"
	"time"

	"gitlab.com/bugfix-arena.net/internal/domain"
)

type RoundRepository interface {
	// CreateRound inserts the round and fills its ID and CreatedAt
	CreateRound(ctx context.Context, round *domain.Round) error

	// GetRound returns nil when the round does not exist
	GetRound(ctx context.Context, roundID int64) (*domain.Round, error)

	ListRounds(ctx context.Context) ([]*domain.Round, error)

	DeleteRound(ctx context.Context, roundID int64) error

	// TransitionRound moves the round to status "to" only if its current status is one of "from".
	// It reports whether a row changed. Nil times leave the stored values untouched.
	TransitionRound(ctx context.Context, roundID int64, from []domain.RoundStatus, to domain.RoundStatus, startTime, endsAt *time.Time) (bool, error)

	// ListExpiredRounds returns ACTIVE rounds whose ends_at is not after now
	ListExpiredRounds(ctx context.Context, now time.Time) ([]*domain.Round, error)
}
