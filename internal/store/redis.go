package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures the Redis backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // namespace prepended to every key
}

// Redis stores each key as a plain string value holding JSON.
type Redis struct {
	rc     *redis.Client
	prefix string
}

// OpenRedis connects and pings the server.
func OpenRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	rc := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("store: redis ping %s: %w", cfg.Addr, err)
	}
	return NewRedis(rc, cfg.Prefix), nil
}

// NewRedis wraps an existing client.
func NewRedis(rc *redis.Client, prefix string) *Redis {
	return &Redis{rc: rc, prefix: prefix}
}

func (r *Redis) key(k string) string {
	return r.prefix + k
}

func (r *Redis) Save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("store: marshal %s: %w", key, err)
	}
	if err := r.rc.Set(ctx, r.key(key), data, 0).Err(); err != nil {
		return fmt.Errorf("store: redis set %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Load(ctx context.Context, key string, dst any) (bool, error) {
	data, err := r.rc.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return true, fmt.Errorf("store: unmarshal %s: %w", key, err)
	}
	return true, nil
}

// Clear deletes the application keys under the prefix only; other data in the
// same Redis database is left alone.
func (r *Redis) Clear(ctx context.Context) error {
	keys := make([]string, 0, len(Keys))
	for _, k := range Keys {
		keys = append(keys, r.key(k))
	}
	if err := r.rc.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("store: redis del: %w", err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.rc.Close()
}
