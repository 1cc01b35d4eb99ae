package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	cfg := NewSystemConfig()

	assert.Equal(t, "https://emkc.org/api/v2/piston", cfg.PistonConfig.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.PistonConfig.Timeout)
	assert.Equal(t, 50, cfg.ContestConfig.CompetitionBroadcastLimit)
	assert.Equal(t, time.Duration(0), cfg.ContestConfig.SubmissionGrace)
	assert.Equal(t, 5*time.Second, cfg.ScheduleSvcCfg.RoundSweepInterval)
	assert.Equal(t, 300*time.Second, cfg.RedisConfig.RuntimeCacheTTL)
	assert.Equal(t, 720*time.Minute, cfg.JwtConfig.TTL)
}

func TestOverrides(t *testing.T) {
	t.Setenv("SUBMISSION_GRACE_SEC", "10")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("JWT_TTL_MIN", "-3")
	t.Setenv("HTTP_PORT", "not-a-number")

	cfg := NewSystemConfig()
	assert.Equal(t, 10*time.Second, cfg.ContestConfig.SubmissionGrace)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HttpConfig.AllowedOrigins)
	assert.Equal(t, 720*time.Minute, cfg.JwtConfig.TTL)
	assert.Equal(t, 8082, cfg.HttpConfig.Port)
}
