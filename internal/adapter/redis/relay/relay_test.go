package relay

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/bugfix-arena.net/internal/adapter/logging"
)

type delivery struct {
	room, event string
	payload     interface{}
}

type sink struct {
	mu  sync.Mutex
	got []delivery
}

func (s *sink) BroadcastToRoom(_ context.Context, room, event string, payload interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, delivery{room, event, payload})
	return nil
}

func (s *sink) deliveries() []delivery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]delivery(nil), s.got...)
}

func TestRelayFansOutAcrossInstances(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	newInstance := func() (*Relay, *sink) {
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		local := &sink{}
		r := NewRelay(client, "arena:test", local, logging.NewNopLogger())
		require.NoError(t, r.Start(ctx))
		return r, local
	}
	a, localA := newInstance()
	_, localB := newInstance()

	payload := map[string]interface{}{"roundId": 3}
	require.NoError(t, a.BroadcastToRoom(ctx, "round_3", "round_leaderboard_update", payload))

	require.Eventually(t, func() bool { return len(localB.deliveries()) == 1 }, 2*time.Second, 10*time.Millisecond)
	got := localB.deliveries()[0]
	assert.Equal(t, "round_3", got.room)
	assert.Equal(t, "round_leaderboard_update", got.event)
	assert.JSONEq(t, `{"roundId":3}`, string(got.payload.(json.RawMessage)))

	// the origin sees its own message exactly once, from the direct delivery
	time.Sleep(50 * time.Millisecond)
	require.Len(t, localA.deliveries(), 1)
	assert.Equal(t, payload, localA.deliveries()[0].payload)
}

func TestRelayDropsMalformedMessages(t *testing.T) {
	mr := miniredis.RunT(t)
	local := &sink{}
	r := NewRelay(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "arena:test", local, logging.NewNopLogger())

	r.handle(context.Background(), "not json")
	assert.Empty(t, local.deliveries())
}
