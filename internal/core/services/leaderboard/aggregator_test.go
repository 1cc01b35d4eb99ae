package leaderboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/bugfix-arena.net/internal/adapter/logging"
	"gitlab.com/bugfix-arena.net/internal/adapter/memory"
	"gitlab.com/bugfix-arena.net/internal/core/ports/secondary"
	"gitlab.com/bugfix-arena.net/internal/domain"
)

func TestApply(t *testing.T) {
	row := &domain.LeaderboardRow{}

	Apply(row, true, 10, 120)
	assert.Equal(t, 10, row.Score)
	assert.Equal(t, 120, row.TimePenalty)
	assert.Equal(t, 1, row.CorrectCount)

	Apply(row, false, 0, 300)
	assert.Equal(t, 10, row.Score, "failed attempts never add score")
	assert.Equal(t, 120, row.TimePenalty, "failed attempts never add penalty")
	assert.Equal(t, 1, row.WrongCount)
}

func TestRank(t *testing.T) {
	rows := []*domain.LeaderboardRow{
		{ID: 1, UserID: 1, Score: 10, TimePenalty: 300},
		{ID: 2, UserID: 2, Score: 20, TimePenalty: 500},
		{ID: 3, UserID: 3, Score: 10, TimePenalty: 100},
		{ID: 4, UserID: 4, Score: 10, TimePenalty: 300},
		{ID: 5, UserID: 5, Score: 0, TimePenalty: 0},
	}
	Rank(rows)

	order := make([]int64, 0, len(rows))
	for i, r := range rows {
		assert.Equal(t, i+1, r.Rank)
		order = append(order, r.UserID)
	}
	assert.Equal(t, []int64{2, 3, 1, 4, 5}, order, "ties fall back to insertion order")
}

func TestRank_Empty(t *testing.T) {
	assert.NotPanics(t, func() { Rank(nil) })
}

func TestApplyResult(t *testing.T) {
	store := memory.New()
	alice := store.AddUser(domain.User{Username: "alice"})
	bob := store.AddUser(domain.User{Username: "bob"})
	agg := NewAggregator(logging.NewNopLogger())
	ctx := context.Background()

	apply := func(userID int64, passed bool, score, elapsed int) *domain.LeaderboardRow {
		var row *domain.LeaderboardRow
		err := store.WithinTx(ctx, func(ctx context.Context, tx secondary.ScoringTx) error {
			var err error
			row, _, err = agg.ApplyResult(ctx, tx, 7, userID, passed, score, elapsed)
			return err
		})
		require.NoError(t, err)
		return row
	}

	row := apply(alice.ID, false, 0, 30)
	assert.Equal(t, 1, row.Rank)
	assert.Equal(t, 1, row.WrongCount)

	row = apply(bob.ID, true, 10, 60)
	assert.Equal(t, 1, row.Rank)
	assert.Equal(t, 10, row.Score)

	row = apply(alice.ID, true, 10, 40)
	assert.Equal(t, 1, row.Rank, "equal score, lower penalty ranks first")

	standings, err := store.ListRoundStandings(ctx, 7)
	require.NoError(t, err)
	require.Len(t, standings, 2)
	assert.Equal(t, alice.ID, standings[0].UserID)
	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, bob.ID, standings[1].UserID)
	assert.Equal(t, 2, standings[1].Rank)

	u, err := store.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, u.TotalScore)
}

func TestApplyResult_ZeroScoreLeavesTotal(t *testing.T) {
	store := memory.New()
	carol := store.AddUser(domain.User{Username: "carol"})
	agg := NewAggregator(logging.NewNopLogger())
	ctx := context.Background()

	err := store.WithinTx(ctx, func(ctx context.Context, tx secondary.ScoringTx) error {
		_, _, err := agg.ApplyResult(ctx, tx, 1, carol.ID, true, 0, 10)
		return err
	})
	require.NoError(t, err)

	u, _ := store.GetByID(ctx, carol.ID)
	assert.Equal(t, 0, u.TotalScore)
}
