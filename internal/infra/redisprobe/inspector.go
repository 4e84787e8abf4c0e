// Package redisprobe inspects the backend's Redis leaderboard cache.
package redisprobe

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Yumouqianxia/predprobe/internal/domain"
	"github.com/Yumouqianxia/predprobe/internal/ports"
)

const scanBatch = 100

type Inspector struct {
	client  *redis.Client
	pattern string
}

func New(profile domain.RedisProfile) *Inspector {
	return &Inspector{
		client: redis.NewClient(&redis.Options{
			Addr:     profile.Addr,
			Password: profile.Password,
			DB:       profile.DB,
		}),
		pattern: profile.KeyPattern,
	}
}

var _ ports.CacheInspector = (*Inspector)(nil)

func (i *Inspector) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := i.client.Ping(ctx).Err(); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

func (i *Inspector) LeaderboardKeys(ctx context.Context) ([]domain.CacheKey, error) {
	var keys []domain.CacheKey

	iter := i.client.Scan(ctx, 0, i.pattern, scanBatch).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		ttl, err := i.client.TTL(ctx, key).Result()
		if err != nil {
			return nil, err
		}

		ttlSeconds := int64(-1)
		if ttl > 0 {
			ttlSeconds = int64(ttl / time.Second)
		}
		keys = append(keys, domain.CacheKey{Key: key, TTLSeconds: ttlSeconds})
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	return keys, nil
}

func (i *Inspector) Close() error {
	return i.client.Close()
}
