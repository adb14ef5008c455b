package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/agent-management/internal/auth"
	"github.com/spec-kit/agent-management/internal/config"
	"github.com/spec-kit/agent-management/internal/domain"
	apperrors "github.com/spec-kit/agent-management/pkg/util"
)

type fakeUserRepo struct {
	users map[string]domain.User
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]string)}
}

func (f *fakeTokenStore) SaveToken(_ context.Context, token, username string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = username
	return nil
}

func (f *fakeTokenStore) TokenExists(_ context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.tokens[token]
	return ok, nil
}

func (f *fakeTokenStore) DeleteToken(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, token)
	return nil
}

func newAuthFixture(t *testing.T) (*AuthService, *fakeTokenStore) {
	t.Helper()
	hash, err := auth.HashPassword("s3cret", 4)
	require.NoError(t, err)

	users := &fakeUserRepo{users: map[string]domain.User{
		"marta": {ID: 1, Username: "marta", PasswordHash: hash},
	}}
	store := newFakeTokenStore()
	svc := NewAuthService(config.AuthConfig{
		Enabled:               true,
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 5,
	}, AuthDependencies{UserRepo: users, TokenStore: store})
	return svc, store
}

func TestAuthServiceLogin(t *testing.T) {
	t.Run("valid credentials issue an active token", func(t *testing.T) {
		svc, store := newAuthFixture(t)

		token, expiresAt, err := svc.Login(context.Background(), "marta", "s3cret")
		require.NoError(t, err)
		require.NotEmpty(t, token)
		require.True(t, expiresAt.After(time.Now()))

		active, err := store.TokenExists(context.Background(), token)
		require.NoError(t, err)
		require.True(t, active)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		svc, _ := newAuthFixture(t)

		_, _, err := svc.Login(context.Background(), "marta", "wrong")
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		require.Equal(t, apperrors.CodeUnauthorized, domainErr.Code)
	})

	t.Run("unknown user is unauthorized, not not-found", func(t *testing.T) {
		svc, _ := newAuthFixture(t)

		_, _, err := svc.Login(context.Background(), "nobody", "s3cret")
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		require.Equal(t, apperrors.CodeUnauthorized, domainErr.Code)
	})
}

func TestAuthServiceValidate(t *testing.T) {
	svc, _ := newAuthFixture(t)

	token, _, err := svc.Login(context.Background(), "marta", "s3cret")
	require.NoError(t, err)

	ok, err := svc.Validate(context.Background(), token)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.Validate(context.Background(), "not-a-jwt")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestAuthServiceLogout(t *testing.T) {
	svc, _ := newAuthFixture(t)

	token, _, err := svc.Login(context.Background(), "marta", "s3cret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))

	ok, err := svc.Validate(context.Background(), token)
	require.NoError(t, err)
	require.False(t, ok, "a logged-out token is no longer active")
}
