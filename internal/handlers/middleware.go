package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"gitlab.com/bugfix-arena.net/internal/core/services/auth"
	"gitlab.com/bugfix-arena.net/internal/domain"
	"gitlab.com/bugfix-arena.net/internal/static/errs"
)

type claimsKey struct{}

type MiddlewareProvider struct {
	auth auth.IAuthService
}

func New(authService auth.IAuthService) *MiddlewareProvider {
	return &MiddlewareProvider{
		auth: authService,
	}
}

// JWTMiddleware rejects requests without a valid bearer token and stores its claims in the context
func (m *MiddlewareProvider) JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			ResponseError(w, "Authorization header missing", http.StatusUnauthorized)
			return
		}

		// Extract token from "Bearer <token>"
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := m.auth.Authenticate(r.Context(), tokenString)
		if err != nil {
			ResponseError(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// RequireRole lets through only callers whose token carries role
func (m *MiddlewareProvider) RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				ResponseError(w, errs.Unauthorized.Error(), http.StatusUnauthorized)
				return
			}
			if claims.Role != role {
				ResponseError(w, errs.Forbidden.Error(), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit throttles each authenticated user separately
func (m *MiddlewareProvider) RateLimit(limiter *KeyedRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.RemoteAddr
			if claims, ok := ClaimsFromContext(r.Context()); ok {
				key = strconv.FormatInt(claims.UserID, 10)
			}
			if !limiter.Allow(key) {
				ResponseError(w, "Too many requests, please slow down", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithClaims(ctx context.Context, claims *domain.AuthClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

func ClaimsFromContext(ctx context.Context) (*domain.AuthClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*domain.AuthClaims)
	return claims, ok && claims != nil
}
