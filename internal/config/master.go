package config

import "os"

type AppConfig struct {
	DebugMode       bool
	LogLevel        string
	StoreDriver     string
	HttpConfig      *HttpConfig
	ScheduleSvcCfg  *ScheduleSvcCfg
	RedisConfig     *RedisConfig
	PostgresConfig  *PostgresConfig
	JwtConfig       *JwtConfig
	PistonConfig    *PistonConfig
	ContestConfig   *ContestConfig
	RateLimitConfig *RateLimitConfig
	SeedAdmin       *SeedAdminConfig
}

func NewSystemConfig() *AppConfig {
	return &AppConfig{
		DebugMode:       os.Getenv("DEBUG_MODE") == "true",
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		StoreDriver:     getEnv("STORE_DRIVER", "postgres"),
		HttpConfig:      NewHttpConfig(),
		ScheduleSvcCfg:  NewScheduleSvcCfg(),
		RedisConfig:     NewRedisConfig(),
		PostgresConfig:  NewPostgresConfig(),
		JwtConfig:       NewJwtConfig(),
		PistonConfig:    NewPistonConfig(),
		ContestConfig:   NewContestConfig(),
		RateLimitConfig: NewRateLimitConfig(),
		SeedAdmin:       NewSeedAdminConfig(),
	}
}

// SeedAdminConfig is the account created at startup when running on the in-memory store
type SeedAdminConfig struct {
	Username string
	Password string
}

func NewSeedAdminConfig() *SeedAdminConfig {
	return &SeedAdminConfig{
		Username: getEnv("ADMIN_USERNAME", "admin"),
		Password: os.Getenv("ADMIN_PASSWORD"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
