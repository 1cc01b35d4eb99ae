package runtimecache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/bugfix-arena.net/internal/adapter/logging"
	"gitlab.com/bugfix-arena.net/internal/domain"
)

func TestRuntimeCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewRuntimeCache(client, "piston:runtimes", time.Minute, logging.NewNopLogger())
	ctx := context.Background()

	_, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	want := []domain.Runtime{{Language: "python", Version: "3.10.0", Aliases: []string{"py"}}}
	require.NoError(t, cache.Set(ctx, want))

	got, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	mr.FastForward(2 * time.Minute)
	_, ok, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRuntimeCache_MalformedEntry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewRuntimeCache(client, "piston:runtimes", time.Minute, logging.NewNopLogger())
	require.NoError(t, mr.Set("piston:runtimes", "{not json"))

	_, ok, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRuntimeCache_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewRuntimeCache(client, "piston:runtimes", time.Minute, logging.NewNopLogger())
	mr.Close()

	_, _, err := cache.Get(context.Background())
	assert.Error(t, err)
}
