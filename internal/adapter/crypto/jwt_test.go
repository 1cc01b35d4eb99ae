package crypto

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/bugfix-arena.net/internal/config"
	"gitlab.com/bugfix-arena.net/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(&config.JwtConfig{Secret: "s3cret", TTL: time.Hour})
	ctx := context.Background()

	token, err := svc.GenerateTokenHMAC(ctx, jwt.SigningMethodHS256.Name, domain.AuthClaims{UserID: 7, Username: "ana", Role: domain.RoleAdmin})
	require.NoError(t, err)

	claims, err := svc.VerifyTokenHMAC(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, &domain.AuthClaims{UserID: 7, Username: "ana", Role: domain.RoleAdmin}, claims)
}

func TestVerifyRejects(t *testing.T) {
	ctx := context.Background()
	svc := NewJWTService(&config.JwtConfig{Secret: "s3cret", TTL: time.Minute})
	token, err := svc.GenerateTokenHMAC(ctx, jwt.SigningMethodHS256.Name, domain.AuthClaims{UserID: 1, Username: "bo", Role: domain.RoleParticipant})
	require.NoError(t, err)

	other := NewJWTService(&config.JwtConfig{Secret: "different", TTL: time.Minute})
	_, err = other.VerifyTokenHMAC(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = svc.VerifyTokenHMAC(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.GenerateTokenHMAC(ctx, jwt.SigningMethodRS256.Name, domain.AuthClaims{UserID: 1})
	assert.Error(t, err)
}

func TestPasswords(t *testing.T) {
	svc := NewJWTService(&config.JwtConfig{Secret: "s3cret"})
	ctx := context.Background()

	hash, err := svc.EncryptPassword(ctx, "hunter2")
	require.NoError(t, err)

	ok, err := svc.VerifyPassword(ctx, hash, "hunter2")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = svc.VerifyPassword(ctx, hash, "hunter3")
	assert.False(t, ok)
}
