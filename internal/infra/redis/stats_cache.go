package redis

import (
	"context"
	"encoding/json"
	"time"

	"focus-guardian/internal/domain/model"
)

// StatsCache keeps per-user dashboard stats so the dashboard does not hit
// postgres on every render. Entries are best-effort and expire after ttl;
// Invalidate is called whenever a new session lands.
type StatsCache struct {
	client RedisClient
	ttl    time.Duration
}

func NewStatsCache(client RedisClient, ttl time.Duration) *StatsCache {
	return &StatsCache{
		client: client,
		ttl:    ttl,
	}
}

func statsKey(userID string) string { return "user_stats:" + userID }

func (c *StatsCache) Store(ctx context.Context, userID string, stats model.UserStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statsKey(userID), data, c.ttl)
}

func (c *StatsCache) Get(ctx context.Context, userID string) (*model.UserStats, error) {
	data, err := c.client.Get(ctx, statsKey(userID))
	if err != nil {
		return nil, err
	}
	var stats model.UserStats
	if err := json.Unmarshal([]byte(data), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *StatsCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, statsKey(userID))
}
