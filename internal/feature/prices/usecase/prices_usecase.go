// Package usecase implements the business logic of the prices feature.
package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	decision "coffee_backend/internal/feature/decision/domain/entity"
	"coffee_backend/internal/feature/prices/domain"
	"coffee_backend/internal/feature/prices/domain/entity"
)

const (
	// DefaultHistoryDays is how many recent quotes History and Profile read by default.
	DefaultHistoryDays = 90
	// MaxHistoryDays caps History requests.
	MaxHistoryDays = 365
)

// PriceRepository is the read side of quote storage.
type PriceRepository interface {
	// Find returns up to limit quotes, newest first.
	Find(ctx context.Context, variety decision.Variety, limit int) ([]entity.Quote, error)
}

// QuoteWriter is the write side of quote storage.
type QuoteWriter interface {
	UpsertBatch(ctx context.Context, quotes []entity.Quote) error
}

// PriceStore is both sides; the cache decorator implements it too.
type PriceStore interface {
	PriceRepository
	QuoteWriter
}

type pricesUsecase struct {
	store       PriceStore
	historyDays int
}

// NewPricesUsecase creates the prices usecase. historyDays <= 0 uses DefaultHistoryDays.
func NewPricesUsecase(store PriceStore, historyDays int) *pricesUsecase {
	if historyDays <= 0 {
		historyDays = DefaultHistoryDays
	}
	return &pricesUsecase{store: store, historyDays: historyDays}
}

// ParseVariety validates a variety name from user input.
func ParseVariety(s string) (decision.Variety, error) {
	v, ok := decision.LookupVariety(s)
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownVariety, strings.TrimSpace(s))
	}
	return v, nil
}

// Record stores one quote, replacing any quote already stored for that day.
func (u *pricesUsecase) Record(ctx context.Context, q entity.Quote) error {
	if q.Date.IsZero() {
		return fmt.Errorf("%w: missing date", domain.ErrInvalidQuote)
	}
	if q.Price <= 0 || math.IsNaN(q.Price) || math.IsInf(q.Price, 0) {
		return fmt.Errorf("%w: price must be positive, got %v", domain.ErrInvalidQuote, q.Price)
	}
	q.Date = time.Date(q.Date.Year(), q.Date.Month(), q.Date.Day(), 0, 0, 0, 0, time.UTC)
	return u.store.UpsertBatch(ctx, []entity.Quote{q})
}

// History returns up to days quotes, newest first.
func (u *pricesUsecase) History(ctx context.Context, variety decision.Variety, days int) ([]entity.Quote, error) {
	if days <= 0 || days > MaxHistoryDays {
		days = u.historyDays
	}
	return u.store.Find(ctx, variety, days)
}

// Profile builds the engine's price input from the stored history.
func (u *pricesUsecase) Profile(ctx context.Context, variety decision.Variety, quantitySacks float64, state decision.CoffeeState) (decision.PriceProfile, error) {
	quotes, err := u.store.Find(ctx, variety, u.historyDays)
	if err != nil {
		return decision.PriceProfile{}, err
	}
	if len(quotes) == 0 {
		return decision.PriceProfile{}, fmt.Errorf("%w: %s", domain.ErrNoPrices, variety)
	}
	return BuildProfile(quotes, quantitySacks, state), nil
}
