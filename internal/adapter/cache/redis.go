// internal/adapter/cache/redis.go

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrMiss is returned when a key is not cached
var ErrMiss = errors.New("key not found in cache")

// NewRedisClient connects to redis and verifies the connection
func NewRedisClient(url string, logger *zap.Logger) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", zap.String("address", opts.Addr), zap.Error(err))
		return nil, fmt.Errorf("failed to ping redis at %s: %w", opts.Addr, err)
	}
	logger.Info("Connected to Redis", zap.String("address", opts.Addr))
	return rdb, nil
}

// RedisStore is a byte cache backed by redis
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisStore creates a new redis cache store
func NewRedisStore(client *redis.Client, logger *zap.Logger) *RedisStore {
	return &RedisStore{client: client, logger: logger}
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		r.logger.Error("Redis Get failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("RedisStore.Get for key '%s': %w", key, err)
	}
	return val, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Error("Redis Set failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("RedisStore.Set for key '%s': %w", key, err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Redis Del failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("RedisStore.Delete for key '%s': %w", key, err)
	}
	return nil
}

// MarkOnce sets key only if it is absent. It reports whether this call set it.
func (r *RedisStore) MarkOnce(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, key, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("RedisStore.MarkOnce for key '%s': %w", key, err)
	}
	return ok, nil
}

// Ping checks the redis connection
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
