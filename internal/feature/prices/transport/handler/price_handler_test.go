package handler_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	decision "coffee_backend/internal/feature/decision/domain/entity"
	"coffee_backend/internal/feature/prices/domain"
	"coffee_backend/internal/feature/prices/domain/entity"
	"coffee_backend/internal/feature/prices/transport/handler"
	"coffee_backend/internal/feature/prices/usecase"
)

type mockPricesUsecase struct {
	HistoryFunc func(ctx context.Context, variety decision.Variety, days int) ([]entity.Quote, error)
	ProfileFunc func(ctx context.Context, variety decision.Variety, quantitySacks float64, state decision.CoffeeState) (decision.PriceProfile, error)
	RecordFunc  func(ctx context.Context, q entity.Quote) error
}

func (m *mockPricesUsecase) History(ctx context.Context, variety decision.Variety, days int) ([]entity.Quote, error) {
	return m.HistoryFunc(ctx, variety, days)
}

func (m *mockPricesUsecase) Profile(ctx context.Context, variety decision.Variety, quantitySacks float64, state decision.CoffeeState) (decision.PriceProfile, error) {
	return m.ProfileFunc(ctx, variety, quantitySacks, state)
}

func (m *mockPricesUsecase) Record(ctx context.Context, q entity.Quote) error {
	return m.RecordFunc(ctx, q)
}

func newRouter(uc handler.PricesUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewPriceHandler(uc, usecase.ParseVariety)
	r := gin.New()
	r.GET("/prices/:variety", h.History)
	r.GET("/prices/:variety/profile", h.Profile)
	r.POST("/prices/:variety", h.Record)
	return r
}

func TestPriceHandler_History(t *testing.T) {
	day := time.Date(2025, 10, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		url          string
		history      func(ctx context.Context, variety decision.Variety, days int) ([]entity.Quote, error)
		expectedCode int
		expectedBody string
	}{
		{
			name: "success",
			url:  "/prices/arabica?days=2",
			history: func(_ context.Context, variety decision.Variety, days int) ([]entity.Quote, error) {
				assert.Equal(t, decision.VarietyArabica, variety)
				assert.Equal(t, 2, days)
				return []entity.Quote{
					{Variety: variety, Date: day, Price: 1850.5},
					{Variety: variety, Date: day.AddDate(0, 0, -1), Price: 1840},
				}, nil
			},
			expectedCode: http.StatusOK,
			expectedBody: `[{"variety":"arabica","date":"2025-10-30","price":1850.5},{"variety":"arabica","date":"2025-10-29","price":1840}]`,
		},
		{
			name: "conilon alias and invalid days",
			url:  "/prices/Conilon?days=abc",
			history: func(_ context.Context, variety decision.Variety, days int) ([]entity.Quote, error) {
				assert.Equal(t, decision.VarietyRobusta, variety)
				assert.Equal(t, 0, days)
				return nil, nil
			},
			expectedCode: http.StatusOK,
			expectedBody: `[]`,
		},
		{
			name:         "unknown variety",
			url:          "/prices/liberica",
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"unknown coffee variety: \"liberica\""}`,
		},
		{
			name: "repository failure",
			url:  "/prices/robusta",
			history: func(context.Context, decision.Variety, int) ([]entity.Quote, error) {
				return nil, errors.New("connection refused")
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"failed to load prices"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(&mockPricesUsecase{HistoryFunc: tt.history})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestPriceHandler_Profile(t *testing.T) {
	std := 12.5
	avg := 1800.0

	tests := []struct {
		name         string
		url          string
		profile      func(ctx context.Context, variety decision.Variety, qty float64, state decision.CoffeeState) (decision.PriceProfile, error)
		expectedCode int
		contains     string
	}{
		{
			name: "success",
			url:  "/prices/arabica/profile?quantity=150&state=torrado",
			profile: func(_ context.Context, variety decision.Variety, qty float64, state decision.CoffeeState) (decision.PriceProfile, error) {
				assert.Equal(t, 150.0, qty)
				assert.Equal(t, decision.StateRoasted, state)
				return decision.PriceProfile{
					CurrentPrice:   1850,
					MovingAverages: []decision.PricePoint{{Period: "01/10/2025 a 03/10/2025", MovingAverage: &avg}},
					StdDeviation:   &std,
					QuantitySacks:  qty,
					CoffeeState:    state,
				}, nil
			},
			expectedCode: http.StatusOK,
			contains:     `"current_price":1850`,
		},
		{
			name:         "negative quantity",
			url:          "/prices/arabica/profile?quantity=-1",
			expectedCode: http.StatusBadRequest,
			contains:     "quantity",
		},
		{
			name: "no stored prices",
			url:  "/prices/robusta/profile",
			profile: func(_ context.Context, variety decision.Variety, _ float64, _ decision.CoffeeState) (decision.PriceProfile, error) {
				return decision.PriceProfile{}, fmt.Errorf("%w: %s", domain.ErrNoPrices, variety)
			},
			expectedCode: http.StatusNotFound,
			contains:     "no prices recorded",
		},
		{
			name: "storage failure",
			url:  "/prices/robusta/profile",
			profile: func(context.Context, decision.Variety, float64, decision.CoffeeState) (decision.PriceProfile, error) {
				return decision.PriceProfile{}, errors.New("boom")
			},
			expectedCode: http.StatusInternalServerError,
			contains:     "failed to build price profile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(&mockPricesUsecase{ProfileFunc: tt.profile})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.contains)
		})
	}
}

func TestPriceHandler_Record(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		record       func(ctx context.Context, q entity.Quote) error
		expectedCode int
	}{
		{
			name: "success",
			body: `{"date":"2025-10-30","price":1850.25}`,
			record: func(_ context.Context, q entity.Quote) error {
				assert.Equal(t, decision.VarietyArabica, q.Variety)
				assert.Equal(t, 1850.25, q.Price)
				assert.Equal(t, "2025-10-30", q.Date.Format(time.DateOnly))
				return nil
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "malformed date",
			body:         `{"date":"30/10/2025","price":10}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "non-positive price",
			body:         `{"date":"2025-10-30","price":0}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "rejected by usecase",
			body: `{"date":"2025-10-30","price":10}`,
			record: func(context.Context, entity.Quote) error {
				return fmt.Errorf("%w: missing date", domain.ErrInvalidQuote)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "storage failure",
			body: `{"date":"2025-10-30","price":10}`,
			record: func(context.Context, entity.Quote) error {
				return errors.New("db down")
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			uc := &mockPricesUsecase{RecordFunc: func(ctx context.Context, q entity.Quote) error {
				called = true
				require.NotNil(t, tt.record, "usecase must not be reached")
				return tt.record(ctx, q)
			}}
			r := newRouter(uc)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/prices/arabica", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, tt.record != nil, called)
		})
	}
}
