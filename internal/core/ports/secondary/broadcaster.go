package secondary

import "context"

// Broadcaster delivers an event to every subscriber of a room
type Broadcaster interface {
	BroadcastToRoom(ctx context.Context, room, event string, payload interface{}) error
}
