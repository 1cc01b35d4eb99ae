package leaderboard

import (
	"context"

	"gitlab.com/bugfix-arena.net/internal/domain"
)

// ILeaderboardService builds the leaderboards shown to viewers
type ILeaderboardService interface {
	// RoundBoard returns the round standings by rank with each user's submission marks
	RoundBoard(ctx context.Context, roundID int64) (*domain.RoundBoard, error)

	// CompetitionBoard returns the top users across all rounds
	CompetitionBoard(ctx context.Context, limit int) ([]*domain.CompetitionEntry, error)
}
