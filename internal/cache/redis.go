// Package cache wraps Redis for report response caching. Reports are
// recomputed projections, so a short TTL plus invalidation on every
// ticket write keeps them fresh without hitting the aggregator on each
// dashboard poll.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ReportTTL bounds staleness when an invalidation is missed.
const ReportTTL = 60 * time.Second

// RedisClient represents the Redis client.
type RedisClient struct {
	*redis.Client
}

// NewRedisClient connects to Redis at addr and verifies the connection.
func NewRedisClient(addr string) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	return &RedisClient{client}, nil
}

// SetJSON sets a JSON value with expiration.
func (rc *RedisClient) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return rc.Set(ctx, key, data, expiration).Err()
}

// GetJSON gets a JSON value. Returns redis.Nil via the wrapped error
// when the key is absent.
func (rc *RedisClient) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := rc.Get(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", key, err)
	}
	return json.Unmarshal([]byte(data), dest)
}

// InvalidateReports drops every cached report. Called after any ticket
// write.
func (rc *RedisClient) InvalidateReports(ctx context.Context) error {
	iter := rc.Scan(ctx, 0, "report:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := rc.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// MonthlyReportKey is the cache key for a monthly report.
func MonthlyReportKey(month, year int) string {
	return fmt.Sprintf("report:monthly:%d:%d", year, month)
}

// YearlyReportKey is the cache key for a yearly report.
func YearlyReportKey(year int) string {
	return fmt.Sprintf("report:yearly:%d", year)
}
