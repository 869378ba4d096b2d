package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"coffee_backend/internal/app/di"
	priceusecase "coffee_backend/internal/feature/prices/usecase"
	"coffee_backend/internal/platform/config"
	infradb "coffee_backend/internal/platform/db"
	infraredis "coffee_backend/internal/platform/redis"
	"coffee_backend/internal/shared/ratelimiter"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := infradb.Open(cfg.Database)
	if err != nil {
		slog.Error("database unavailable", "error", err)
		os.Exit(1)
	}

	// cached pages are invalidated on write when Redis is reachable
	rdb, err := infraredis.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, cache will not be invalidated", "error", err)
		rdb = nil
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	uc := priceusecase.NewIngestUsecase(
		di.NewScraper(cfg.Prices),
		di.NewPriceStore(db, rdb, cfg.Redis.PriceTTL),
		ratelimiter.NewRateLimiter(cfg.Prices.ScrapeEvery),
	)

	stored, err := uc.IngestAll(ctx, priceusecase.IngestVarieties)
	if err != nil {
		slog.Error("ingest failed", "error", err)
		os.Exit(1)
	}
	slog.Info("ingest ok", "stored", stored)
}
