package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/shayari-hub/backend/internal/models"
	"github.com/redis/go-redis/v9"
)

const trendingKey = "shayari:trending_poets"

// TrendingCache stores the ranked trending poets between recomputations.
type TrendingCache interface {
	// GetTrending returns ok=false on a miss.
	GetTrending(ctx context.Context) (poets []models.TrendingPoet, ok bool, err error)
	SetTrending(ctx context.Context, poets []models.TrendingPoet) error
	Close() error
}

// RedisTrendingCache implements TrendingCache on Redis. A nil receiver or
// client behaves as an always-empty cache.
type RedisTrendingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTrendingCache connects to redisURL. An empty URL yields a no-op cache.
func NewRedisTrendingCache(redisURL string, ttl time.Duration) (*RedisTrendingCache, error) {
	if redisURL == "" {
		return &RedisTrendingCache{}, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisTrendingCache{client: rdb, ttl: ttl}, nil
}

func (c *RedisTrendingCache) GetTrending(ctx context.Context) ([]models.TrendingPoet, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}

	raw, err := c.client.Get(ctx, trendingKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var poets []models.TrendingPoet
	if err := json.Unmarshal(raw, &poets); err != nil {
		return nil, false, err
	}
	return poets, true, nil
}

func (c *RedisTrendingCache) SetTrending(ctx context.Context, poets []models.TrendingPoet) error {
	if c == nil || c.client == nil {
		return nil
	}

	raw, err := json.Marshal(poets)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, trendingKey, raw, c.ttl).Err()
}

func (c *RedisTrendingCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
