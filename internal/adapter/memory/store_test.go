package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/bugfix-arena.net/internal/core/ports/secondary"
	"gitlab.com/bugfix-arena.net/internal/domain"
	"gitlab.com/bugfix-arena.net/internal/static/errs"
)

func TestWithinTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := New()
	user := s.AddUser(domain.User{Username: "ana"})
	round := &domain.Round{RoundNumber: 1, Name: "R1", DurationMinutes: 10, Weight: 30, Status: domain.RoundStatusActive}
	require.NoError(t, s.CreateRound(ctx, round))

	boom := errors.New("boom")
	err := s.WithinTx(ctx, func(ctx context.Context, tx secondary.ScoringTx) error {
		require.NoError(t, tx.AddUserScore(ctx, user.ID, 10))
		row, err := tx.LockLeaderboardRow(ctx, round.ID, user.ID)
		require.NoError(t, err)
		row.Score = 10
		require.NoError(t, tx.SaveLeaderboardRow(ctx, row))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.TotalScore)

	standings, err := s.ListRoundStandings(ctx, round.ID)
	require.NoError(t, err)
	assert.Empty(t, standings)
}

func TestWithinTxCommits(t *testing.T) {
	ctx := context.Background()
	s := New()
	team := s.AddTeam("Segfaults")
	user := s.AddUser(domain.User{Username: "ana", TeamID: &team})
	round := &domain.Round{RoundNumber: 1, Name: "R1", DurationMinutes: 10, Weight: 30, Status: domain.RoundStatusActive}
	require.NoError(t, s.CreateRound(ctx, round))

	err := s.WithinTx(ctx, func(ctx context.Context, tx secondary.ScoringTx) error {
		if err := tx.AddUserScore(ctx, user.ID, 10); err != nil {
			return err
		}
		row, err := tx.LockLeaderboardRow(ctx, round.ID, user.ID)
		if err != nil {
			return err
		}
		row.Score = 10
		row.Rank = 1
		if err := tx.SaveLeaderboardRow(ctx, row); err != nil {
			return err
		}
		return tx.SaveRanks(ctx, []*domain.LeaderboardRow{row})
	})
	require.NoError(t, err)

	standings, err := s.ListRoundStandings(ctx, round.ID)
	require.NoError(t, err)
	require.Len(t, standings, 1)
	assert.Equal(t, "Segfaults", standings[0].TeamName)
	assert.Equal(t, 1, standings[0].Rank)

	top, err := s.TopUsers(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, 10, top[0].TotalScore)
}

func TestTxErrorsForUnknownRows(t *testing.T) {
	ctx := context.Background()
	s := New()

	err := s.WithinTx(ctx, func(ctx context.Context, tx secondary.ScoringTx) error {
		_, err := tx.LockRound(ctx, 99)
		return err
	})
	assert.ErrorIs(t, err, errs.ErrRoundNotFound)

	err = s.WithinTx(ctx, func(ctx context.Context, tx secondary.ScoringTx) error {
		return tx.AddUserScore(ctx, 99, 1)
	})
	assert.ErrorIs(t, err, errs.ErrUserNotFound)
}

func TestRoundTransitionsAndExpiry(t *testing.T) {
	ctx := context.Background()
	s := New()
	round := &domain.Round{RoundNumber: 1, Name: "R1", DurationMinutes: 10, Weight: 30, Status: domain.RoundStatusUnlocked}
	require.NoError(t, s.CreateRound(ctx, round))
	assert.ErrorIs(t, s.CreateRound(ctx, &domain.Round{RoundNumber: 1}), errs.ErrConflict)

	start := time.Now().Add(-time.Hour)
	ends := start.Add(10 * time.Minute)
	ok, err := s.TransitionRound(ctx, round.ID, []domain.RoundStatus{domain.RoundStatusUnlocked}, domain.RoundStatusActive, &start, &ends)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.TransitionRound(ctx, round.ID, []domain.RoundStatus{domain.RoundStatusUnlocked}, domain.RoundStatusActive, nil, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	expired, err := s.ListExpiredRounds(ctx, time.Now())
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, round.ID, expired[0].ID)
}
