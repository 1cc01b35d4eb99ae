package config

import (
	"os"
	"strconv"
	"time"
)

type JwtConfig struct {
	Secret string
	TTL    time.Duration
}

func NewJwtConfig() *JwtConfig {
	ttlMin, err := strconv.Atoi(os.Getenv("JWT_TTL_MIN"))
	if err != nil || ttlMin <= 0 {
		ttlMin = 720
	}
	return &JwtConfig{
		Secret: os.Getenv("JWT_SECRET"),
		TTL:    time.Duration(ttlMin) * time.Minute,
	}
}
