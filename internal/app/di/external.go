// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"log/slog"

	explanationusecase "coffee_backend/internal/feature/explanation/usecase"
	"coffee_backend/internal/platform/config"
	"coffee_backend/internal/platform/externalapi/gemini"
	"coffee_backend/internal/platform/externalapi/noticiasagricolas"
	"coffee_backend/internal/platform/externalapi/openmeteo"
	"coffee_backend/internal/platform/externalapi/rag"
	httpx "coffee_backend/internal/platform/http"
)

// NewOpenMeteo creates the geocoding and forecast client behind a circuit breaker.
func NewOpenMeteo(cfg config.OpenMeteoConfig) *openmeteo.Client {
	client := httpx.NewBreakerClient(httpx.NewHTTPClient(cfg.Timeout), "open-meteo", httpx.DefaultBreakerSettings())
	return openmeteo.NewClient(openmeteo.Config{
		ForecastURL:  cfg.ForecastURL,
		GeocodingURL: cfg.GeocodingURL,
	}, client)
}

// NewRAG creates the report search client behind a circuit breaker.
func NewRAG(cfg config.RAGConfig) *rag.Client {
	client := httpx.NewBreakerClient(httpx.NewHTTPClient(cfg.Timeout), "rag", httpx.DefaultBreakerSettings())
	return rag.NewClient(cfg.BaseURL, client)
}

// NewScraper creates the quotation page scraper behind a circuit breaker.
func NewScraper(cfg config.PricesConfig) *noticiasagricolas.Scraper {
	client := httpx.NewBreakerClient(httpx.NewHTTPClient(cfg.Timeout), "noticias-agricolas", httpx.DefaultBreakerSettings())
	return noticiasagricolas.NewScraper(cfg.SourceURL, client)
}

// NewTextGenerator returns the Gemini generator, or nil when the LLM is disabled
// or cannot be initialized. A nil generator makes explanations use the template.
func NewTextGenerator(ctx context.Context, cfg config.LLMConfig) explanationusecase.TextGenerator {
	if !cfg.Enabled {
		slog.Info("LLM disabled, explanations use the template")
		return nil
	}
	gen, err := gemini.NewGenerator(ctx, cfg.Model)
	if err != nil {
		slog.Warn("Gemini unavailable, explanations use the template", "error", err)
		return nil
	}
	slog.Info("Gemini generator ready", "model", cfg.Model)
	return gen
}
