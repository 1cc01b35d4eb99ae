package publisher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/bugfix-arena.net/internal/adapter/logging"
	"gitlab.com/bugfix-arena.net/internal/domain"
	"gitlab.com/bugfix-arena.net/internal/static/errs"
)

type sent struct {
	room    string
	event   string
	payload interface{}
}

type recorder struct {
	mu   sync.Mutex
	sent []sent
	err  error
}

func (r *recorder) BroadcastToRoom(_ context.Context, room, event string, payload interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, sent{room, event, payload})
	return nil
}

type stubBoards struct {
	board    *domain.RoundBoard
	top      []*domain.CompetitionEntry
	roundErr error
	limit    int
}

func (s *stubBoards) RoundBoard(_ context.Context, roundID int64) (*domain.RoundBoard, error) {
	if s.roundErr != nil {
		return nil, s.roundErr
	}
	return s.board, nil
}

func (s *stubBoards) CompetitionBoard(_ context.Context, limit int) ([]*domain.CompetitionEntry, error) {
	s.limit = limit
	return s.top, nil
}

func TestPublishLeaderboards(t *testing.T) {
	boards := &stubBoards{
		board: &domain.RoundBoard{RoundID: 4, Leaderboard: []*domain.RoundStanding{{UserID: 1, Rank: 1, Score: 10}}},
		top:   []*domain.CompetitionEntry{{ID: 1, Username: "ana", TotalScore: 10}},
	}
	rec := &recorder{}
	p := NewLivePublisher(boards, rec, 0, logging.NewNopLogger())

	p.PublishLeaderboards(context.Background(), 4)

	require.Len(t, rec.sent, 2)
	assert.Equal(t, "round_4", rec.sent[0].room)
	assert.Equal(t, domain.EventRoundLeaderboardUpdate, rec.sent[0].event)
	assert.Equal(t, boards.board, rec.sent[0].payload)

	assert.Equal(t, domain.CompetitionRoom, rec.sent[1].room)
	assert.Equal(t, domain.EventCompetitionLeaderboardUpdate, rec.sent[1].event)
	assert.Equal(t, competitionPayload{Leaderboard: boards.top}, rec.sent[1].payload)
	assert.Equal(t, DefaultCompetitionLimit, boards.limit)
}

func TestPublishLeaderboards_RoundBoardFailureStillSendsCompetition(t *testing.T) {
	boards := &stubBoards{roundErr: errs.ErrRoundNotFound}
	rec := &recorder{}
	p := NewLivePublisher(boards, rec, 10, logging.NewNopLogger())

	p.PublishLeaderboards(context.Background(), 4)

	require.Len(t, rec.sent, 1)
	assert.Equal(t, domain.CompetitionRoom, rec.sent[0].room)
	assert.Equal(t, 10, boards.limit)
}

func TestPublishLeaderboards_BroadcastFailureIsSwallowed(t *testing.T) {
	rec := &recorder{err: errors.New("redis down")}
	p := NewLivePublisher(&stubBoards{board: &domain.RoundBoard{}}, rec, 10, logging.NewNopLogger())

	assert.NotPanics(t, func() { p.PublishLeaderboards(context.Background(), 1) })
}

func TestPublishRoundEvent(t *testing.T) {
	rec := &recorder{}
	p := NewLivePublisher(&stubBoards{}, rec, 10, logging.NewNopLogger())
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	round := &domain.Round{ID: 7, Status: domain.RoundStatusActive}
	p.PublishRoundEvent(context.Background(), domain.EventRoundStarted, round)

	require.Len(t, rec.sent, 2)
	assert.Equal(t, "round_7", rec.sent[0].room)
	assert.Equal(t, domain.EventRoundStarted, rec.sent[0].event)
	assert.Equal(t, domain.CompetitionRoom, rec.sent[1].room)
	assert.Equal(t, domain.EventRoundUpdated, rec.sent[1].event)

	payload, ok := rec.sent[0].payload.(RoundEventPayload)
	require.True(t, ok)
	assert.Equal(t, fixed, payload.ServerTime)
	assert.Equal(t, int64(7), payload.ID)
}
