package publisher

import (
	"context"

	"gitlab.com/bugfix-arena.net/internal/domain"
)

// ILivePublisher pushes committed state to viewers. Failures never reach the caller.
type ILivePublisher interface {
	// PublishLeaderboards sends the round board to the round room and the top users to the competition room
	PublishLeaderboards(ctx context.Context, roundID int64)

	// PublishRoundEvent sends a lifecycle event to the round room and round_updated to the competition room
	PublishRoundEvent(ctx context.Context, event string, round *domain.Round)
}
