// Package cache keeps computed tenant dashboards in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const keyPrefix = "payroll:dashboard:"

// DashboardCache is safe to use with a nil client: every call becomes a miss or a no-op.
type DashboardCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewDashboardCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *DashboardCache {
	return &DashboardCache{client: client, ttl: ttl, log: log}
}

func (c *DashboardCache) Enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

func key(tenant string) string {
	return keyPrefix + tenant
}

// Get decodes the cached dashboard of tenant into dst and reports whether it was found.
func (c *DashboardCache) Get(ctx context.Context, tenant string, dst interface{}) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	data, err := c.client.Get(ctx, key(tenant)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		// a stale shape from an older build is a miss, not a failure
		c.log.Warn("dropping undecodable dashboard cache entry", zap.String("tenant", tenant), zap.Error(err))
		c.client.Del(ctx, key(tenant))
		return false, nil
	}
	return true, nil
}

func (c *DashboardCache) Set(ctx context.Context, tenant string, value interface{}) error {
	if !c.Enabled() {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(tenant), data, c.ttl).Err()
}

func (c *DashboardCache) Invalidate(ctx context.Context, tenant string) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Del(ctx, key(tenant)).Err()
}
