package auth

import (
	"context"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"gitlab.com/bugfix-arena.net/internal/core/ports/primary"
	"gitlab.com/bugfix-arena.net/internal/core/ports/secondary"
	"gitlab.com/bugfix-arena.net/internal/domain"
	"gitlab.com/bugfix-arena.net/internal/static/errs"
)

var _ IAuthService = &localAuthService{}

type localAuthService struct {
	userPort    secondary.UserPort
	jwtProvider primary.JWTService
	logger      primary.Logger
}

func NewLocalAuthService(
	userPort secondary.UserPort,
	jwtProvider primary.JWTService,
	logger primary.Logger,
) IAuthService {
	return &localAuthService{
		userPort:    userPort,
		jwtProvider: jwtProvider,
		logger:      logger,
	}
}

func (g localAuthService) Login(ctx context.Context, username, password string) (*domain.LoginResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errs.InvalidCredentials
	}

	usr, err := g.userPort.GetByUsername(ctx, username)
	if err != nil {
		g.logger.Error("Failed to get user", "username", username, "error", err)
		return nil, errs.InternalError
	}
	if usr == nil || usr.PasswordHash == nil {
		return nil, errs.InvalidCredentials
	}
	valid, err := g.jwtProvider.VerifyPassword(ctx, *usr.PasswordHash, password)
	if err != nil || !valid {
		g.logger.Info("Login rejected", "username", username)
		return nil, errs.InvalidCredentials
	}

	token, err := g.jwtProvider.GenerateTokenHMAC(ctx, jwt.SigningMethodHS256.Name, domain.AuthClaims{
		UserID:   usr.ID,
		Username: usr.Username,
		Role:     usr.Role,
	})
	if err != nil {
		g.logger.Error("Failed to generate token", "userId", usr.ID, "error", err)
		return nil, errs.GeneratingToken
	}
	return &domain.LoginResponse{Token: token, User: usr}, nil
}

func (g localAuthService) Authenticate(ctx context.Context, token string) (*domain.AuthClaims, error) {
	claims, err := g.jwtProvider.VerifyTokenHMAC(ctx, token)
	if err != nil {
		g.logger.Debug("Token rejected", "error", err)
		return nil, errs.Unauthorized
	}
	return claims, nil
}
