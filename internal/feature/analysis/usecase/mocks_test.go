package usecase_test

import (
	"context"

	"coffee_backend/internal/feature/analysis/domain/entity"
	decision "coffee_backend/internal/feature/decision/domain/entity"
	explanation "coffee_backend/internal/feature/explanation/usecase"
	reports "coffee_backend/internal/feature/reports/usecase"
)

type mockClimate struct {
	ClimateProfileFunc func(ctx context.Context, city, state string) (decision.ClimateProfile, error)
}

func (m *mockClimate) ClimateProfile(ctx context.Context, city, state string) (decision.ClimateProfile, error) {
	return m.ClimateProfileFunc(ctx, city, state)
}

type mockPrices struct {
	ProfileFunc func(ctx context.Context, variety decision.Variety, qty float64, state decision.CoffeeState) (decision.PriceProfile, error)
}

func (m *mockPrices) Profile(ctx context.Context, variety decision.Variety, qty float64, state decision.CoffeeState) (decision.PriceProfile, error) {
	return m.ProfileFunc(ctx, variety, qty, state)
}

type mockReports struct {
	MarketReportsFunc func(ctx context.Context, q reports.Query) ([]decision.MarketReport, error)
}

func (m *mockReports) MarketReports(ctx context.Context, q reports.Query) ([]decision.MarketReport, error) {
	return m.MarketReportsFunc(ctx, q)
}

type mockExplainer struct {
	calls       int
	ExplainFunc func(ctx context.Context, req explanation.Request) explanation.Explanation
}

func (m *mockExplainer) Explain(ctx context.Context, req explanation.Request) explanation.Explanation {
	m.calls++
	return m.ExplainFunc(ctx, req)
}

type mockRepo struct {
	CreateFunc     func(ctx context.Context, a *entity.Analysis) error
	ListByUserFunc func(ctx context.Context, userID uint, skip, limit int) ([]entity.Analysis, error)
	FindByIDFunc   func(ctx context.Context, id uint) (entity.Analysis, error)
	DeleteFunc     func(ctx context.Context, id uint) error
}

func (m *mockRepo) Create(ctx context.Context, a *entity.Analysis) error {
	return m.CreateFunc(ctx, a)
}

func (m *mockRepo) ListByUser(ctx context.Context, userID uint, skip, limit int) ([]entity.Analysis, error) {
	return m.ListByUserFunc(ctx, userID, skip, limit)
}

func (m *mockRepo) FindByID(ctx context.Context, id uint) (entity.Analysis, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockRepo) Delete(ctx context.Context, id uint) error {
	return m.DeleteFunc(ctx, id)
}
