package secondary

import (
	"context"

	"gitlab.com/bugfix-arena.net/internal/domain"
)

type LeaderboardRepository interface {
	// ListRoundStandings returns the round's standings ordered by rank
	ListRoundStandings(ctx context.Context, roundID int64) ([]*domain.RoundStanding, error)

	// ListRoundMarks returns every submission mark of the round oldest first
	ListRoundMarks(ctx context.Context, roundID int64) ([]domain.SubmissionMark, error)

	// TopUsers returns users by total score descending
	TopUsers(ctx context.Context, limit int) ([]*domain.CompetitionEntry, error)
}
