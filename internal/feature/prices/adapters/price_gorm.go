package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	decision "coffee_backend/internal/feature/decision/domain/entity"
	"coffee_backend/internal/feature/prices/domain/entity"
	"coffee_backend/internal/feature/prices/usecase"
)

type priceGorm struct {
	db *gorm.DB
}

var (
	_ usecase.PriceRepository = (*priceGorm)(nil)
	_ usecase.QuoteWriter     = (*priceGorm)(nil)
)

func NewPriceRepository(db *gorm.DB) *priceGorm {
	return &priceGorm{db: db}
}

type PriceModel struct {
	ID        uint      `gorm:"primaryKey"`
	Variety   string    `gorm:"size:16;not null;uniqueIndex:price_variety_date,priority:1"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:price_variety_date,priority:2"`
	Price     float64   `gorm:"type:numeric(10,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PriceModel) TableName() string {
	return "coffee_prices"
}

func toModel(q entity.Quote) PriceModel {
	return PriceModel{
		Variety: string(q.Variety),
		Date:    q.Date.UTC().Truncate(24 * time.Hour),
		Price:   q.Price,
	}
}

func toEntity(m PriceModel) entity.Quote {
	return entity.Quote{
		Variety: decision.Variety(m.Variety),
		Date:    m.Date.UTC(),
		Price:   m.Price,
	}
}

// UpsertBatch stores quotes; a second quote for the same (variety, date) replaces the price.
func (r *priceGorm) UpsertBatch(ctx context.Context, quotes []entity.Quote) error {
	if len(quotes) == 0 {
		return nil
	}
	ms := make([]PriceModel, 0, len(quotes))
	for _, q := range quotes {
		ms = append(ms, toModel(q))
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "variety"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "updated_at"}),
	}).Create(&ms).Error
}

// Find returns up to limit quotes for variety, newest first. limit <= 0 means all.
func (r *priceGorm) Find(ctx context.Context, variety decision.Variety, limit int) ([]entity.Quote, error) {
	var rows []PriceModel
	q := r.db.WithContext(ctx).
		Where("variety = ?", string(variety)).
		Order("date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Quote, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}
