package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/SwiftWareCo/GolfSync-sub005/config"
)

// Client wraps the redis connection with the domain operations this service
// needs: the per-date lottery processing lock and request rate limiting.
// Callers treat a nil *Client as "redis absent" and degrade.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient connects and pings.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── lottery processing lock ──

const processingLockPrefix = "lottery:processing:"

// AcquireProcessingLock takes the per-date lottery lock. Only one processing
// pass may run per date at a time; the TTL guards against a crashed holder.
func (c *Client) AcquireProcessingLock(ctx context.Context, date string, ttl time.Duration) (bool, error) {
	return c.rdb.SetNX(ctx, processingLockPrefix+date, "1", ttl).Result()
}

// ReleaseProcessingLock frees the per-date lottery lock.
func (c *Client) ReleaseProcessingLock(ctx context.Context, date string) error {
	return c.rdb.Del(ctx, processingLockPrefix+date).Err()
}

// ── rate limiting ──

// CheckRateLimit counts a request against key's fixed window and reports
// whether it is still within limit. The window key expires on first hit.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	pipe := c.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= int64(limit), nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
