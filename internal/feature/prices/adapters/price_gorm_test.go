package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	decision "coffee_backend/internal/feature/decision/domain/entity"
	"coffee_backend/internal/feature/prices/domain/entity"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")
	// every pooled connection to :memory: would open its own empty database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&PriceModel{}), "failed to migrate table")
	return db
}

func day(d int) time.Time {
	return time.Date(2025, 9, d, 0, 0, 0, 0, time.UTC)
}

func TestPriceGorm_UpsertBatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		seed     []entity.Quote
		quotes   []entity.Quote
		variety  decision.Variety
		expected []float64
	}{
		{
			name:     "empty batch is a no-op",
			quotes:   nil,
			variety:  decision.VarietyArabica,
			expected: []float64{},
		},
		{
			name: "insert several days",
			quotes: []entity.Quote{
				{Variety: decision.VarietyArabica, Date: day(1), Price: 2200.5},
				{Variety: decision.VarietyArabica, Date: day(2), Price: 2210.75},
			},
			variety:  decision.VarietyArabica,
			expected: []float64{2210.75, 2200.5},
		},
		{
			name: "same day replaces the price",
			seed: []entity.Quote{{Variety: decision.VarietyArabica, Date: day(1), Price: 2200}},
			quotes: []entity.Quote{
				{Variety: decision.VarietyArabica, Date: day(1), Price: 2250},
			},
			variety:  decision.VarietyArabica,
			expected: []float64{2250},
		},
		{
			name: "varieties are independent",
			seed: []entity.Quote{{Variety: decision.VarietyRobusta, Date: day(1), Price: 1400}},
			quotes: []entity.Quote{
				{Variety: decision.VarietyArabica, Date: day(1), Price: 2250},
			},
			variety:  decision.VarietyRobusta,
			expected: []float64{1400},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewPriceRepository(setupTestDB(t))
			ctx := context.Background()
			require.NoError(t, repo.UpsertBatch(ctx, tt.seed))

			require.NoError(t, repo.UpsertBatch(ctx, tt.quotes))

			got, err := repo.Find(ctx, tt.variety, 0)
			require.NoError(t, err)
			prices := make([]float64, 0, len(got))
			for _, q := range got {
				prices = append(prices, q.Price)
				assert.Equal(t, tt.variety, q.Variety)
			}
			assert.Equal(t, tt.expected, prices)
		})
	}
}

func TestPriceGorm_Find_NewestFirstWithLimit(t *testing.T) {
	t.Parallel()

	repo := NewPriceRepository(setupTestDB(t))
	ctx := context.Background()
	var quotes []entity.Quote
	for d := 1; d <= 10; d++ {
		quotes = append(quotes, entity.Quote{Variety: decision.VarietyArabica, Date: day(d), Price: float64(2000 + d)})
	}
	require.NoError(t, repo.UpsertBatch(ctx, quotes))

	got, err := repo.Find(ctx, decision.VarietyArabica, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, day(10), got[0].Date)
	assert.Equal(t, day(9), got[1].Date)
	assert.Equal(t, day(8), got[2].Date)
	assert.Equal(t, 2010.0, got[0].Price)
}
