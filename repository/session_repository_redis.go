package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "loancalc:session:"

// RedisSessionRepository stores admin sessions in Redis so they survive a
// server restart and can be shared between instances.
type RedisSessionRepository struct {
	client *redis.Client
}

func NewRedisSessionRepository(addr, password string, db int) *RedisSessionRepository {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisSessionRepository{client: rdb}
}

// Ping checks that the server is reachable.
func (r *RedisSessionRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisSessionRepository) Close() error {
	return r.client.Close()
}

func (r *RedisSessionRepository) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, sessionKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get session: %w", err)
	}
	return val, true, nil
}

func (r *RedisSessionRepository) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, sessionKeyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (r *RedisSessionRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}
