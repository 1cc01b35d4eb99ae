package config

import (
	"os"
	"strconv"
	"time"
)

type ScheduleSvcCfg struct {
	RoundSweepInterval time.Duration
}

func NewScheduleSvcCfg() *ScheduleSvcCfg {
	return &ScheduleSvcCfg{
		RoundSweepInterval: getEnvSeconds("ROUND_SWEEP_INTERVAL_SEC", 5),
	}
}

type PistonConfig struct {
	BaseURL          string
	Timeout          time.Duration
	RunTimeoutMs     int
	CompileTimeoutMs int
}

func NewPistonConfig() *PistonConfig {
	return &PistonConfig{
		BaseURL:          getEnv("PISTON_BASE_URL", "https://emkc.org/api/v2/piston"),
		Timeout:          getEnvSeconds("PISTON_TIMEOUT_SEC", 15),
		RunTimeoutMs:     getEnvInt("PISTON_RUN_TIMEOUT_MS", 3000),
		CompileTimeoutMs: getEnvInt("PISTON_COMPILE_TIMEOUT_MS", 10000),
	}
}

type ContestConfig struct {
	CompetitionBroadcastLimit int
	// SubmissionGrace extends acceptance past endsAt. The default 0 rejects any submission
	// arriving after the round clock ran out.
	SubmissionGrace time.Duration
}

func NewContestConfig() *ContestConfig {
	return &ContestConfig{
		CompetitionBroadcastLimit: getEnvInt("COMPETITION_BROADCAST_LIMIT", 50),
		SubmissionGrace:           getEnvSeconds("SUBMISSION_GRACE_SEC", 0),
	}
}

type RateLimitConfig struct {
	// PerMinute is the sustained submit or run rate per user, Burst the extra allowance
	PerMinute int
	Burst     int
}

func NewRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		PerMinute: getEnvInt("RATE_LIMIT_PER_MIN", 20),
		Burst:     getEnvInt("RATE_LIMIT_BURST", 5),
	}
}

func getEnvInt(key string, fallback int) int {
	varInt, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return varInt
}

func getEnvSeconds(key string, fallback int) time.Duration {
	return time.Duration(getEnvInt(key, fallback)) * time.Second
}
