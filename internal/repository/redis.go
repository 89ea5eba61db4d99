package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"
)

// RedisConfig configures the Redis-backed Store.
type RedisConfig struct {
	Addr     string
	Key      string
	Capacity int
	// ConnectRetries bounds the pings attempted before giving up; ConnectBackoff is the first delay.
	ConnectRetries uint64
	ConnectBackoff time.Duration
}

type redisStore struct {
	client   *redis.Client
	key      string
	capacity int64
}

// NewRedisStore connects to Redis and returns a Store keeping the feed in a list at cfg.Key.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (Store, error) {
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.Key == "" {
		cfg.Key = "activities"
	}
	if cfg.ConnectBackoff <= 0 {
		cfg.ConnectBackoff = 100 * time.Millisecond
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr})

	backoff := retry.WithMaxRetries(cfg.ConnectRetries, retry.NewExponential(cfg.ConnectBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &redisStore{client: client, key: cfg.Key, capacity: int64(cfg.Capacity)}, nil
}

func (r *redisStore) Add(ctx context.Context, a Activity) error {
	raw, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode activity: %w", err)
	}
	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, r.key, raw)
	pipe.LTrim(ctx, r.key, 0, r.capacity-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	return nil
}

func (r *redisStore) Recent(ctx context.Context, n int) ([]Activity, error) {
	if n < 0 || int64(n) > r.capacity {
		n = int(r.capacity)
	}
	if n == 0 {
		return []Activity{}, nil
	}
	vals, err := r.client.LRange(ctx, r.key, 0, int64(n)-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Activity, 0, len(vals))
	for _, v := range vals {
		var a Activity
		if err := json.Unmarshal([]byte(v), &a); err != nil {
			return nil, fmt.Errorf("decode activity: %w", err)
		}
		out = append(out, a)
	}
	return out, nil
}

// Close releases the Redis connection pool.
func (r *redisStore) Close() error {
	return r.client.Close()
}
