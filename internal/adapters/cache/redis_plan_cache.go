package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fleet-route-planner/internal/domain"
	"fleet-route-planner/internal/platform/obs"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "plan:"

// RedisPlanCache stores computed plans as JSON keyed by input fingerprint.
type RedisPlanCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

// A ttl of zero keeps entries until evicted by Redis.
func NewRedisPlanCache(rdb *redis.Client, ttl time.Duration) *RedisPlanCache {
	return &RedisPlanCache{rdb: rdb, ttl: ttl, prefix: defaultKeyPrefix}
}

// Connect parses a redis:// URL and verifies the server answers PING.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("connect redis: parse url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect redis: ping %s: %w", opts.Addr, err)
	}

	return rdb, nil
}

func (c *RedisPlanCache) Get(ctx context.Context, key string) (_ *domain.StoredPlan, _ bool, err error) {
	defer obs.Time(ctx, "redis.GetPlan")(&err)

	b, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("plan cache get %s: %w", key, err)
	}

	var p domain.StoredPlan
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, false, fmt.Errorf("plan cache get %s: decode: %w", key, err)
	}

	return &p, true, nil
}

func (c *RedisPlanCache) Put(ctx context.Context, key string, p *domain.StoredPlan) (err error) {
	defer obs.Time(ctx, "redis.PutPlan")(&err)

	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("plan cache put %s: encode: %w", key, err)
	}

	if err := c.rdb.Set(ctx, c.prefix+key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("plan cache put %s: %w", key, err)
	}

	return nil
}
