package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/vadiminshakov/memewatch/internal/domain"
	"github.com/vadiminshakov/memewatch/pkg/retrier"
)

const redisKeyPrefix = "memewatch:rows:"

// RedisCache ResultCache backed by Redis, for running several watcher
// instances against one shared refresh window. Entries expire server-side
// via the key TTL.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCache connects to Redis and verifies the connection with a ping,
// retrying with backoff so the watcher survives a Redis that is still
// starting up.
func NewRedisCache(ctx context.Context, addr, password string, db int, ttl time.Duration) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	r := retrier.New(retrier.WithMaxRetries(5), retrier.WithInitialInterval(500*time.Millisecond))
	if err := r.Do(ctx, func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}); err != nil {
		return nil, errors.Wrap(err, "failed to ping redis")
	}

	return &RedisCache{rdb: rdb, ttl: ttl}, nil
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]domain.MarketRow, error) {
	payload, err := r.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "redis get failed")
	}

	var rows []domain.MarketRow
	if err := json.Unmarshal(payload, &rows); err != nil {
		return nil, errors.Wrap(err, "failed to decode cached rows")
	}

	return rows, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, rows []domain.MarketRow) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return errors.Wrap(err, "failed to encode rows")
	}

	if err := r.rdb.Set(ctx, redisKeyPrefix+key, payload, r.ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set failed")
	}

	return nil
}

func (r *RedisCache) Invalidate(ctx context.Context) error {
	iter := r.rdb.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return errors.Wrap(err, "redis del failed")
		}
	}

	return errors.Wrap(iter.Err(), "redis scan failed")
}

// Close releases the underlying Redis connection.
func (r *RedisCache) Close() error {
	return r.rdb.Close()
}
