package leaderboard

import (
	"context"
	"fmt"
	"sort"

	"gitlab.com/bugfix-arena.net/internal/core/ports/primary"
	"gitlab.com/bugfix-arena.net/internal/core/ports/secondary"
	"gitlab.com/bugfix-arena.net/internal/domain"
)

// Aggregator maintains round standings. It only works inside a caller supplied transaction.
type Aggregator struct {
	logger primary.Logger
}

func NewAggregator(logger primary.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// ApplyResult records one evaluated submission in the round standings and rebuilds every rank of
// the round. It returns the user's updated row and the full ranking.
func (a *Aggregator) ApplyResult(
	ctx context.Context,
	tx secondary.ScoringTx,
	roundID, userID int64,
	passed bool,
	score, elapsedSeconds int,
) (*domain.LeaderboardRow, []*domain.LeaderboardRow, error) {
	row, err := tx.LockLeaderboardRow(ctx, roundID, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to lock leaderboard row: %w", err)
	}

	Apply(row, passed, score, elapsedSeconds)
	if err := tx.SaveLeaderboardRow(ctx, row); err != nil {
		return nil, nil, fmt.Errorf("failed to save leaderboard row: %w", err)
	}

	rows, err := tx.ListLeaderboardRows(ctx, roundID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list leaderboard rows: %w", err)
	}
	Rank(rows)
	if err := tx.SaveRanks(ctx, rows); err != nil {
		return nil, nil, fmt.Errorf("failed to save ranks: %w", err)
	}

	for _, r := range rows {
		if r.UserID == userID {
			row = r
			break
		}
	}

	if passed && score > 0 {
		if err := tx.AddUserScore(ctx, userID, score); err != nil {
			return nil, nil, fmt.Errorf("failed to add user score: %w", err)
		}
	}

	a.logger.Debug("Leaderboard updated", "roundId", roundID, "userId", userID, "rank", row.Rank, "score", row.Score)
	return row, rows, nil
}

// Apply adds one result to a row. Failed attempts only count as wrong; they never add score or penalty.
func Apply(row *domain.LeaderboardRow, passed bool, score, elapsedSeconds int) {
	if !passed {
		row.WrongCount++
		return
	}
	row.Score += score
	row.TimePenalty += elapsedSeconds
	row.CorrectCount++
}

// Rank orders rows by score descending, time penalty ascending, then row id, and assigns ranks
// 1..N in that order.
func Rank(rows []*domain.LeaderboardRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.TimePenalty != b.TimePenalty {
			return a.TimePenalty < b.TimePenalty
		}
		return a.ID < b.ID
	})
	for i, r := range rows {
		r.Rank = i + 1
	}
}
