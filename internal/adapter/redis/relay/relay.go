// Package relay fans broadcasts out to every instance through Redis pub/sub. Each instance
// delivers to its own sockets directly and ignores its own messages coming back from Redis.
package relay

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"gitlab.com/bugfix-arena.net/internal/core/ports/primary"
	"gitlab.com/bugfix-arena.net/internal/core/ports/secondary"
)

var _ secondary.Broadcaster = (*Relay)(nil)

type envelope struct {
	Origin  string          `json:"origin"`
	Room    string          `json:"room"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

type Relay struct {
	redisClient *redis.Client
	channel     string
	origin      string
	local       secondary.Broadcaster
	logger      primary.Logger
}

func NewRelay(redisClient *redis.Client, channel string, local secondary.Broadcaster, logger primary.Logger) *Relay {
	return &Relay{
		redisClient: redisClient,
		channel:     channel,
		origin:      uuid.NewString(),
		local:       local,
		logger:      logger,
	}
}

// BroadcastToRoom delivers locally, then publishes for the other instances
func (r *Relay) BroadcastToRoom(ctx context.Context, room, event string, payload interface{}) error {
	if err := r.local.BroadcastToRoom(ctx, room, event, payload); err != nil {
		return err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	msg, err := json.Marshal(envelope{Origin: r.origin, Room: room, Event: event, Payload: raw})
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}
	if err := r.redisClient.Publish(ctx, r.channel, msg).Err(); err != nil {
		return fmt.Errorf("failed to publish broadcast: %w", err)
	}
	return nil
}

// Start subscribes and returns once the subscription is live. Messages are relayed until ctx ends.
func (r *Relay) Start(ctx context.Context) error {
	ps := r.redisClient.Subscribe(ctx, r.channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return fmt.Errorf("failed to subscribe to %s: %w", r.channel, err)
	}

	go func() {
		defer ps.Close()
		ch := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				r.handle(ctx, msg.Payload)
			}
		}
	}()
	r.logger.Info("Broadcast relay subscribed", "channel", r.channel, "origin", r.origin)
	return nil
}

func (r *Relay) handle(ctx context.Context, data string) {
	var env envelope
	if err := json.Unmarshal([]byte(data), &env); err != nil {
		r.logger.Warn("Dropping malformed relay message", "error", err)
		return
	}
	if env.Origin == r.origin {
		return
	}
	if err := r.local.BroadcastToRoom(ctx, env.Room, env.Event, env.Payload); err != nil {
		r.logger.Warn("Failed to deliver relayed broadcast", "room", env.Room, "event", env.Event, "error", err)
	}
}
