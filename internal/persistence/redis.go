package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/agent-management/internal/config"
)

const tokenKeyPrefix = "auth:token:"

// Redis wraps the go-redis client. It doubles as the store for active
// access tokens, keyed by token with the username as value.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// SaveToken records an active token with a TTL.
func (r *Redis) SaveToken(ctx context.Context, token, username string, ttl time.Duration) error {
	return r.Client.Set(ctx, tokenKeyPrefix+token, username, ttl).Err()
}

// TokenExists reports whether the token is still active.
func (r *Redis) TokenExists(ctx context.Context, token string) (bool, error) {
	count, err := r.Client.Exists(ctx, tokenKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteToken invalidates a token.
func (r *Redis) DeleteToken(ctx context.Context, token string) error {
	return r.Client.Del(ctx, tokenKeyPrefix+token).Err()
}
