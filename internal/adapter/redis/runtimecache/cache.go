// Package runtimecache keeps the sandbox runtime list in Redis.
package runtimecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"gitlab.com/bugfix-arena.net/internal/core/ports/primary"
	"gitlab.com/bugfix-arena.net/internal/core/ports/secondary"
	"gitlab.com/bugfix-arena.net/internal/domain"
)

var _ secondary.RuntimeCache = (*RuntimeCache)(nil)

type RuntimeCache struct {
	redisClient *redis.Client
	key         string
	ttl         time.Duration
	logger      primary.Logger
}

func NewRuntimeCache(redisClient *redis.Client, key string, ttl time.Duration, logger primary.Logger) *RuntimeCache {
	return &RuntimeCache{
		redisClient: redisClient,
		key:         key,
		ttl:         ttl,
		logger:      logger,
	}
}

func (c *RuntimeCache) Get(ctx context.Context) ([]domain.Runtime, bool, error) {
	data, err := c.redisClient.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get runtimes: %w", err)
	}

	var runtimes []domain.Runtime
	if err := json.Unmarshal(data, &runtimes); err != nil {
		c.logger.Warn("Dropping malformed runtime cache entry", "key", c.key, "error", err)
		return nil, false, nil
	}
	return runtimes, true, nil
}

func (c *RuntimeCache) Set(ctx context.Context, runtimes []domain.Runtime) error {
	data, err := json.Marshal(runtimes)
	if err != nil {
		return fmt.Errorf("failed to marshal runtimes: %w", err)
	}
	if err := c.redisClient.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save runtimes: %w", err)
	}
	return nil
}
