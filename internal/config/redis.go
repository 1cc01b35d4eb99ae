package config

import "time"

type RedisConfig struct {
	DB              int
	Url             string
	Password        string
	RelayChannel    string
	RuntimeCacheTTL time.Duration
	RuntimeCacheKey string
}

func NewRedisConfig() *RedisConfig {
	return &RedisConfig{
		DB:              getEnvInt("REDIS_DB", 0),
		Url:             getEnv("REDIS_URL", "localhost:6379"),
		Password:        getEnv("REDIS_PASSWORD", ""),
		RelayChannel:    getEnv("REDIS_RELAY_CHANNEL", "arena:broadcast"),
		RuntimeCacheTTL: getEnvSeconds("RUNTIME_CACHE_TTL_SEC", 300),
		RuntimeCacheKey: getEnv("RUNTIME_CACHE_KEY", "piston:runtimes"),
	}
}
