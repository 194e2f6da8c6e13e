package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "lms:blob:"

type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

func NewRedisStore(client *redis.Client, logger *slog.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		logger: logger,
	}
}

func (r *RedisStore) Load(ctx context.Context, key string) (json.RawMessage, error) {
	raw, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return EmptyList, nil
		}
		return nil, fmt.Errorf("failed to load blob %q: %w", key, err)
	}
	return sanitize(raw, key, r.logger), nil
}

func (r *RedisStore) Save(ctx context.Context, key string, value json.RawMessage) error {
	if err := r.client.Set(ctx, redisKeyPrefix+key, []byte(value), 0).Err(); err != nil {
		return fmt.Errorf("failed to save blob %q: %w", key, err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
