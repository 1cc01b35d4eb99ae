package publisher

import (
	"context"
	"time"

	"gitlab.com/bugfix-arena.net/internal/core/ports/primary"
	"gitlab.com/bugfix-arena.net/internal/core/ports/secondary"
	"gitlab.com/bugfix-arena.net/internal/core/services/leaderboard"
	"gitlab.com/bugfix-arena.net/internal/domain"
)

const DefaultCompetitionLimit = 50

var _ ILivePublisher = (*LivePublisher)(nil)

type LivePublisher struct {
	boards           leaderboard.ILeaderboardService
	broadcaster      secondary.Broadcaster
	competitionLimit int
	logger           primary.Logger
	now              func() time.Time
}

func NewLivePublisher(
	boards leaderboard.ILeaderboardService,
	broadcaster secondary.Broadcaster,
	competitionLimit int,
	logger primary.Logger,
) *LivePublisher {
	if competitionLimit <= 0 {
		competitionLimit = DefaultCompetitionLimit
	}
	return &LivePublisher{
		boards:           boards,
		broadcaster:      broadcaster,
		competitionLimit: competitionLimit,
		logger:           logger,
		now:              time.Now,
	}
}

type competitionPayload struct {
	Leaderboard []*domain.CompetitionEntry `json:"leaderboard"`
}

// RoundEventPayload is the body of every round lifecycle event
type RoundEventPayload struct {
	*domain.Round
	ServerTime time.Time `json:"serverTime"`
}

func (p *LivePublisher) PublishLeaderboards(ctx context.Context, roundID int64) {
	board, err := p.boards.RoundBoard(ctx, roundID)
	if err != nil {
		p.logger.Error("Failed to build round leaderboard", "roundId", roundID, "error", err)
	} else {
		p.send(ctx, domain.RoundRoom(roundID), domain.EventRoundLeaderboardUpdate, board)
	}

	top, err := p.boards.CompetitionBoard(ctx, p.competitionLimit)
	if err != nil {
		p.logger.Error("Failed to build competition leaderboard", "error", err)
		return
	}
	p.send(ctx, domain.CompetitionRoom, domain.EventCompetitionLeaderboardUpdate, competitionPayload{Leaderboard: top})
}

func (p *LivePublisher) PublishRoundEvent(ctx context.Context, event string, round *domain.Round) {
	payload := RoundEventPayload{Round: round, ServerTime: p.now()}
	p.send(ctx, domain.RoundRoom(round.ID), event, payload)
	p.send(ctx, domain.CompetitionRoom, domain.EventRoundUpdated, payload)
}

func (p *LivePublisher) send(ctx context.Context, room, event string, payload interface{}) {
	if err := p.broadcaster.BroadcastToRoom(ctx, room, event, payload); err != nil {
		p.logger.Warn("Failed to broadcast", "room", room, "event", event, "error", err)
		return
	}
	p.logger.Debug("Broadcast sent", "room", room, "event", event)
}
