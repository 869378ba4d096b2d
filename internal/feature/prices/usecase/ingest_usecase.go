package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	decision "coffee_backend/internal/feature/decision/domain/entity"
	"coffee_backend/internal/feature/prices/domain/entity"
	"coffee_backend/internal/shared/ratelimiter"
)

// IngestVarieties are the varieties the quotation page publishes.
var IngestVarieties = []decision.Variety{decision.VarietyArabica, decision.VarietyRobusta}

// QuoteSource fetches the latest published quote for a variety.
type QuoteSource interface {
	LatestQuote(ctx context.Context, variety decision.Variety) (entity.Quote, error)
}

// IngestUsecase pulls the latest quotes from the source and stores them.
type IngestUsecase struct {
	source      QuoteSource
	writer      QuoteWriter
	rateLimiter ratelimiter.RateLimiterInterface
}

// NewIngestUsecase creates a new IngestUsecase.
func NewIngestUsecase(source QuoteSource, writer QuoteWriter, rateLimiter ratelimiter.RateLimiterInterface) *IngestUsecase {
	return &IngestUsecase{source: source, writer: writer, rateLimiter: rateLimiter}
}

func (iu *IngestUsecase) ingestOne(ctx context.Context, variety decision.Variety) (entity.Quote, error) {
	q, err := iu.source.LatestQuote(ctx, variety)
	if err != nil {
		return entity.Quote{}, err
	}
	q.Variety = variety
	if q.Price <= 0 || q.Date.IsZero() {
		return entity.Quote{}, fmt.Errorf("source returned unusable quote %+v", q)
	}
	return q, iu.writer.UpsertBatch(ctx, []entity.Quote{q})
}

// IngestAll ingests every variety, pacing requests with the rate limiter.
// One variety failing does not stop the others; the error is returned only when
// nothing could be stored or ctx ends.
func (iu *IngestUsecase) IngestAll(ctx context.Context, varieties []decision.Variety) (int, error) {
	stored := 0
	var errs []error
	for _, v := range varieties {
		if err := iu.rateLimiter.Wait(ctx); err != nil {
			return stored, err
		}
		q, err := iu.ingestOne(ctx, v)
		if err != nil {
			slog.Error("failed to ingest quote", "variety", v, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", v, err))
			continue
		}
		slog.Info("quote ingested", "variety", v, "date", q.Date.Format("2006-01-02"), "price", q.Price)
		stored++
	}
	if stored == 0 && len(errs) > 0 {
		return 0, errors.Join(errs...)
	}
	return stored, nil
}
