package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"

	"coffee_backend/internal/app/di"
	"coffee_backend/internal/app/router"
	analysisadapters "coffee_backend/internal/feature/analysis/adapters"
	analysishandler "coffee_backend/internal/feature/analysis/transport/handler"
	analysisusecase "coffee_backend/internal/feature/analysis/usecase"
	authadapters "coffee_backend/internal/feature/auth/adapters"
	authhandler "coffee_backend/internal/feature/auth/transport/handler"
	authusecase "coffee_backend/internal/feature/auth/usecase"
	climatehandler "coffee_backend/internal/feature/climate/transport/handler"
	climateusecase "coffee_backend/internal/feature/climate/usecase"
	explanationusecase "coffee_backend/internal/feature/explanation/usecase"
	pricehandler "coffee_backend/internal/feature/prices/transport/handler"
	priceusecase "coffee_backend/internal/feature/prices/usecase"
	reportshandler "coffee_backend/internal/feature/reports/transport/handler"
	reportsusecase "coffee_backend/internal/feature/reports/usecase"
	"coffee_backend/internal/platform/config"
	infradb "coffee_backend/internal/platform/db"
	"coffee_backend/internal/platform/http/handler"
	jwtmw "coffee_backend/internal/platform/jwt"
	infraredis "coffee_backend/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg.Env)
	gin.SetMode(cfg.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	db, err := infradb.Open(cfg.Database)
	if err != nil {
		slog.Error("database unavailable", "error", err)
		os.Exit(1)
	}

	// Redis is optional
	rdb, err := infraredis.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, running without cache", "error", err)
		rdb = nil
	}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// external sources
	meteo := di.NewOpenMeteo(cfg.OpenMeteo)
	ragClient := di.NewRAG(cfg.RAG)
	generator := di.NewTextGenerator(ctx, cfg.LLM)

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	analysisRepo := analysisadapters.NewAnalysisRepository(db)
	priceStore := di.NewPriceStore(db, rdb, cfg.Redis.PriceTTL)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, jwtmw.NewGenerator(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL), analysisRepo)
	pricesUC := priceusecase.NewPricesUsecase(priceStore, cfg.Prices.HistoryDays)
	climateUC := climateusecase.NewClimateUsecase(meteo, meteo)
	reportsUC := reportsusecase.NewReportsUsecase(ragClient, cfg.RAG.TopK)
	analysisUC := analysisusecase.NewAnalysisUsecase(analysisusecase.Deps{
		Climate:   climateUC,
		Prices:    pricesUC,
		Reports:   reportsUC,
		Explainer: explanationusecase.NewExplainer(generator, cfg.LLM.Timeout),
		Repo:      analysisRepo,
	})

	// Handler
	handlers := router.Handlers{
		Auth:     authhandler.NewAuthHandler(authUC),
		Prices:   pricehandler.NewPriceHandler(pricesUC, priceusecase.ParseVariety),
		Climate:  climatehandler.NewClimateHandler(climateUC),
		Reports:  reportshandler.NewSearchHandler(reportsUC),
		Analysis: analysishandler.NewAnalysisHandler(analysisUC),
	}

	checks := map[string]handler.Check{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"rag": ragClient.Ping,
	}
	if rdb != nil {
		checks["redis"] = redisCheck(rdb)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router.NewRouter(handlers, cfg.Auth.JWTSecret, checks),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

func redisCheck(rdb *redisv9.Client) handler.Check {
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}

// setupLogger switches to JSON output outside local development.
func setupLogger(env string) {
	if env == "local" || env == "test" {
		return
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))
}
