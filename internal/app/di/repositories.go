package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	priceadapters "coffee_backend/internal/feature/prices/adapters"
	"coffee_backend/internal/platform/cache"
)

// NewPriceStore returns the price repository wrapped in the Redis cache.
// A nil rdb makes the cache a pass-through.
func NewPriceStore(db *gorm.DB, rdb *redis.Client, ttl time.Duration) *cache.CachingPriceRepository {
	return cache.NewCachingPriceRepository(rdb, ttl, priceadapters.NewPriceRepository(db), "prices")
}
