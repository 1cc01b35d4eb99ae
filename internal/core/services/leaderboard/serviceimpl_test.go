package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/bugfix-arena.net/internal/adapter/logging"
	"gitlab.com/bugfix-arena.net/internal/adapter/memory"
	"gitlab.com/bugfix-arena.net/internal/core/ports/secondary"
	"gitlab.com/bugfix-arena.net/internal/domain"
	"gitlab.com/bugfix-arena.net/internal/static/errs"
)

func TestRoundBoard(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	team := store.AddTeam("null pointers")
	alice := store.AddUser(domain.User{Username: "alice", TeamID: &team})
	bob := store.AddUser(domain.User{Username: "bob"})
	round := &domain.Round{RoundNumber: 1, Name: "warmup", DurationMinutes: 30, Weight: 30, Status: domain.RoundStatusActive}
	require.NoError(t, store.CreateRound(ctx, round))

	agg := NewAggregator(logging.NewNopLogger())
	submit := func(userID, questionID int64, passed bool, score int) {
		err := store.WithinTx(ctx, func(ctx context.Context, tx secondary.ScoringTx) error {
			sub := domain.NewSubmission(userID, round.ID, questionID, "python", "print(1)", time.Now())
			sub.IsCorrect = passed
			if err := tx.CreateSubmission(ctx, sub); err != nil {
				return err
			}
			_, _, err := agg.ApplyResult(ctx, tx, round.ID, userID, passed, score, 5)
			return err
		})
		require.NoError(t, err)
	}
	submit(bob.ID, 100, true, 10)
	submit(alice.ID, 100, false, 0)

	svc := NewLeaderboardService(store, store, logging.NewNopLogger())
	board, err := svc.RoundBoard(ctx, round.ID)
	require.NoError(t, err)

	assert.Equal(t, round.ID, board.RoundID)
	require.Len(t, board.Leaderboard, 2)
	assert.Equal(t, "bob", board.Leaderboard[0].TeamName, "users without a team show their username")
	assert.Equal(t, 1, board.Leaderboard[0].Rank)
	assert.Equal(t, "null pointers", board.Leaderboard[1].TeamName)
	require.Len(t, board.Leaderboard[1].Submissions, 1)
	assert.False(t, board.Leaderboard[1].Submissions[0].Correct)
	assert.Equal(t, int64(100), board.Leaderboard[1].Submissions[0].QuestionID)
}

func TestRoundBoard_UnknownRound(t *testing.T) {
	store := memory.New()
	svc := NewLeaderboardService(store, store, logging.NewNopLogger())
	_, err := svc.RoundBoard(context.Background(), 42)
	assert.ErrorIs(t, err, errs.ErrRoundNotFound)
}

func TestCompetitionBoard(t *testing.T) {
	store := memory.New()
	store.AddUser(domain.User{Username: "a", TotalScore: 5})
	store.AddUser(domain.User{Username: "b", TotalScore: 15})
	store.AddUser(domain.User{Username: "c", TotalScore: 10})
	store.AddUser(domain.User{Username: "root", Role: domain.RoleAdmin, TotalScore: 99})
	svc := NewLeaderboardService(store, store, logging.NewNopLogger())

	top, err := svc.CompetitionBoard(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "b", top[0].Username)
	assert.Equal(t, "c", top[1].Username)

	_, err = svc.CompetitionBoard(context.Background(), 0)
	assert.ErrorIs(t, err, errs.ErrValidation)
}
