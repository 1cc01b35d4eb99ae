package round

import (
	"context"
	"time"

	"gitlab.com/bugfix-arena.net/internal/domain"
)

type CreateRoundCommand struct {
	RoundNumber     int    `json:"roundNumber"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration"`
	Weight          int    `json:"weight"`
}

// Timer fires round completion at a wall clock deadline
type Timer interface {
	Schedule(roundID int64, at time.Time)
	Cancel(roundID int64)
}

type IRoundService interface {
	Create(ctx context.Context, cmd CreateRoundCommand) (*domain.Round, error)
	Get(ctx context.Context, roundID int64) (*domain.Round, error)
	List(ctx context.Context) ([]*domain.Round, error)
	Delete(ctx context.Context, roundID int64) error

	Lock(ctx context.Context, roundID int64) (*domain.Round, error)
	Unlock(ctx context.Context, roundID int64) (*domain.Round, error)
	Start(ctx context.Context, roundID int64) (*domain.Round, error)
	Stop(ctx context.Context, roundID int64) (*domain.Round, error)

	// Complete force completes any round that is not completed yet
	Complete(ctx context.Context, roundID int64) (*domain.Round, error)

	// AutoComplete completes an ACTIVE round when its timer fires. It is a no-op for any other status.
	AutoComplete(ctx context.Context, roundID int64) error

	// ExpiredRounds lists ACTIVE rounds whose end passed
	ExpiredRounds(ctx context.Context, now time.Time) ([]*domain.Round, error)
}
