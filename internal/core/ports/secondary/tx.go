package secondary

import (
	"context"

	"gitlab.com/bugfix-arena.net/internal/domain"
)

// UnitOfWork runs fn inside one database transaction. The transaction commits when fn returns nil
// and rolls back otherwise.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx ScoringTx) error) error
}

// ScoringTx is the transactional write side of a submission. Lock methods hold row locks until
// the transaction ends.
type ScoringTx interface {
	// LockRound locks the round row, serialising scoring within the round
	LockRound(ctx context.Context, roundID int64) (*domain.Round, error)

	// LockUserQuestion locks the (user, question) row, creating it with zero attempts if missing
	LockUserQuestion(ctx context.Context, userID, questionID int64) (*domain.UserQuestion, error)
	SaveUserQuestion(ctx context.Context, uq *domain.UserQuestion) error

	CreateSubmission(ctx context.Context, submission *domain.Submission) error

	// LockLeaderboardRow locks the (round, user) row, creating an empty one if missing
	LockLeaderboardRow(ctx context.Context, roundID, userID int64) (*domain.LeaderboardRow, error)
	SaveLeaderboardRow(ctx context.Context, row *domain.LeaderboardRow) error

	// ListLeaderboardRows returns every row of the round
	ListLeaderboardRows(ctx context.Context, roundID int64) ([]*domain.LeaderboardRow, error)

	// SaveRanks writes the Rank field of every given row
	SaveRanks(ctx context.Context, rows []*domain.LeaderboardRow) error

	AddUserScore(ctx context.Context, userID int64, delta int) error
}
