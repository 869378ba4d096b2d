package usecase_test

import (
	"context"

	decision "coffee_backend/internal/feature/decision/domain/entity"
	"coffee_backend/internal/feature/prices/domain/entity"
)

type mockStore struct {
	FindFunc        func(ctx context.Context, variety decision.Variety, limit int) ([]entity.Quote, error)
	UpsertBatchFunc func(ctx context.Context, quotes []entity.Quote) error
}

func (m *mockStore) Find(ctx context.Context, variety decision.Variety, limit int) ([]entity.Quote, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, variety, limit)
	}
	return nil, nil
}

func (m *mockStore) UpsertBatch(ctx context.Context, quotes []entity.Quote) error {
	if m.UpsertBatchFunc != nil {
		return m.UpsertBatchFunc(ctx, quotes)
	}
	return nil
}

type mockSource struct {
	LatestQuoteFunc func(ctx context.Context, variety decision.Variety) (entity.Quote, error)
}

func (m *mockSource) LatestQuote(ctx context.Context, variety decision.Variety) (entity.Quote, error) {
	return m.LatestQuoteFunc(ctx, variety)
}

type noopLimiter struct{ calls int }

func (l *noopLimiter) Wait(context.Context) error {
	l.calls++
	return nil
}
