package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"salon-booking/api"
)

const unavailableKey = "agendamentos:aprovados"

// UnavailableCache keeps the published list of approved bookings so the feed
// does not hit Postgres on every widget load.
type UnavailableCache interface {
	GetUnavailable(ctx context.Context) ([]api.UnavailableTime, bool, error)
	SetUnavailable(ctx context.Context, feed []api.UnavailableTime) error
	Invalidate(ctx context.Context) error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(addr, password string, db int, ttl time.Duration) (*RedisCache, error) {
	const op = "cache.NewRedisCache"

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &RedisCache{client: client, ttl: ttl}, nil
}

func NewWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// GetUnavailable reports false on a cache miss.
func (r *RedisCache) GetUnavailable(ctx context.Context) ([]api.UnavailableTime, bool, error) {
	const op = "cache.RedisCache.GetUnavailable"

	raw, err := r.client.Get(ctx, unavailableKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	var feed []api.UnavailableTime
	if err := json.Unmarshal(raw, &feed); err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	return feed, true, nil
}

func (r *RedisCache) SetUnavailable(ctx context.Context, feed []api.UnavailableTime) error {
	const op = "cache.RedisCache.SetUnavailable"

	if feed == nil {
		feed = []api.UnavailableTime{}
	}

	raw, err := json.Marshal(feed)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.client.Set(ctx, unavailableKey, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *RedisCache) Invalidate(ctx context.Context) error {
	const op = "cache.RedisCache.Invalidate"

	if _, err := r.client.Del(ctx, unavailableKey).Result(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
