package service

import (
	"context"
	"time"

	"github.com/spec-kit/agent-management/internal/auth"
	"github.com/spec-kit/agent-management/internal/config"
	"github.com/spec-kit/agent-management/internal/repository"
	apperrors "github.com/spec-kit/agent-management/pkg/util"
)

// TokenStore tracks active access tokens so they can be invalidated
// before expiry.
type TokenStore interface {
	SaveToken(ctx context.Context, token, username string, ttl time.Duration) error
	TokenExists(ctx context.Context, token string) (bool, error)
	DeleteToken(ctx context.Context, token string) error
}

// AuthService performs credential checks. The outcome is success with a
// token or an unauthorized failure; there is no session model beyond
// the token's lifetime.
type AuthService struct {
	users    repository.UserRepository
	tokens   TokenStore
	tokenMgr *auth.TokenManager
	enabled  bool
}

// AuthDependencies bundles collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	TokenStore TokenStore
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:    deps.UserRepo,
		tokens:   deps.TokenStore,
		tokenMgr: auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		enabled:  cfg.Enabled,
	}
}

// Enabled reports whether the API requires authentication.
func (s *AuthService) Enabled() bool {
	return s.enabled
}

// Login verifies the credentials and issues an access token recorded in
// the token store.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", time.Time{}, err
	}
	if user == nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(user.Username)
	if err != nil {
		return "", time.Time{}, err
	}
	if err := s.tokens.SaveToken(ctx, token, user.Username, s.tokenMgr.TTL()); err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Validate reports whether the token is well signed and still active.
func (s *AuthService) Validate(ctx context.Context, token string) (bool, error) {
	if _, err := s.tokenMgr.ParseToken(token); err != nil {
		return false, nil
	}
	return s.tokens.TokenExists(ctx, token)
}

// Logout invalidates a token. Unknown tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.tokens.DeleteToken(ctx, token)
}
