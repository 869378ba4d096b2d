// Package cache provides caching decorators for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	decision "coffee_backend/internal/feature/decision/domain/entity"
	"coffee_backend/internal/feature/prices/domain/entity"
	"coffee_backend/internal/feature/prices/usecase"
)

// CachingPriceRepository decorates a price store with Redis caching of Find results.
// A nil Redis client bypasses the cache entirely.
type CachingPriceRepository struct {
	inner     usecase.PriceStore
	rdb       redis.Cmdable
	ttl       time.Duration // 0 means expire at the next quotation
	namespace string
	now       func() time.Time
}

var _ usecase.PriceStore = (*CachingPriceRepository)(nil)

// NewCachingPriceRepository wraps inner. With ttl <= 0 each entry expires at the
// next daily quotation; an empty namespace defaults to "prices".
func NewCachingPriceRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PriceStore, namespace string) *CachingPriceRepository {
	if ttl < 0 {
		ttl = 0
	}
	if namespace == "" {
		namespace = "prices"
	}
	c := &CachingPriceRepository{inner: inner, ttl: ttl, namespace: namespace, now: time.Now}
	// keep the interface nil when no client is configured
	if rdb != nil {
		c.rdb = rdb
	}
	return c
}

// UpsertBatch writes through and invalidates every cached page of the affected varieties.
func (c *CachingPriceRepository) UpsertBatch(ctx context.Context, quotes []entity.Quote) error {
	if err := c.inner.UpsertBatch(ctx, quotes); err != nil {
		return err
	}
	if c.rdb == nil || len(quotes) == 0 {
		return nil
	}

	seen := map[decision.Variety]struct{}{}
	for _, q := range quotes {
		if _, ok := seen[q.Variety]; ok {
			continue
		}
		seen[q.Variety] = struct{}{}
		if err := c.deleteByPattern(ctx, c.cacheKeyPrefix(q.Variety)+"*"); err != nil {
			slog.Warn("price cache invalidation failed", "variety", q.Variety, "error", err)
		}
	}
	return nil
}

// Find serves from cache when possible and fills the cache on a miss.
func (c *CachingPriceRepository) Find(ctx context.Context, variety decision.Variety, limit int) ([]entity.Quote, error) {
	if c.rdb == nil {
		return c.inner.Find(ctx, variety, limit)
	}

	key := c.cacheKey(variety, limit)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Quote
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.Find(ctx, variety, limit)
	if err != nil {
		return nil, err
	}

	// an empty result is not cached so the first ingest shows up immediately
	if len(out) > 0 {
		if b, err := json.Marshal(out); err == nil {
			_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
		}
	}
	return out, nil
}

// entryTTL is the fixed ttl, or the time left until the next quotation at the
// moment the entry is written.
func (c *CachingPriceRepository) entryTTL() time.Duration {
	if c.ttl > 0 {
		return c.ttl
	}
	return TimeUntilNextQuotation(c.now())
}

func (c *CachingPriceRepository) cacheKey(variety decision.Variety, limit int) string {
	return fmt.Sprintf("%s%d", c.cacheKeyPrefix(variety), limit)
}

func (c *CachingPriceRepository) cacheKeyPrefix(variety decision.Variety) string {
	return fmt.Sprintf("%s:%s:", c.namespace, safe(string(variety)))
}

// deleteByPattern deletes all keys matching pattern using SCAN.
func (c *CachingPriceRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			return nil
		}
	}
}

func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
