package repo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"goban/internal/bootstrap"
)

type RedisSessionStorage struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionRedisStorage(cfg bootstrap.Config, redis *redis.Client) *RedisSessionStorage {
	ttl := time.Duration(cfg.SessionTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisSessionStorage{
		client: redis,
		ttl:    ttl,
	}
}

func (r *RedisSessionStorage) GetUserIdBySession(ctx context.Context, sessionID string) (userID string, ok bool) {
	v, err := r.client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Error(err.Error())
		}
		return "", false
	}
	return v, true
}

func (r *RedisSessionStorage) StoreSession(ctx context.Context, sessionID string, userID string) error {
	return r.client.Set(ctx, sessionKey(sessionID), userID, r.ttl).Err()
}

func (r *RedisSessionStorage) DeleteSession(ctx context.Context, sessionID string) (ok bool) {
	deleted, err := r.client.Del(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		slog.Error(err.Error())
		return false
	}
	return deleted > 0
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}
