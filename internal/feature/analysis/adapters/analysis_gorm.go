// Package adapters persists analyses with GORM.
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"coffee_backend/internal/feature/analysis/domain"
	"coffee_backend/internal/feature/analysis/domain/entity"
	"coffee_backend/internal/feature/analysis/usecase"
	decision "coffee_backend/internal/feature/decision/domain/entity"
)

type analysisGorm struct {
	db *gorm.DB
}

var _ usecase.AnalysisRepository = (*analysisGorm)(nil)

func NewAnalysisRepository(db *gorm.DB) *analysisGorm {
	return &analysisGorm{db: db}
}

// AnalysisModel is the analyses table.
type AnalysisModel struct {
	ID           uint            `gorm:"primaryKey"`
	UserID       uint            `gorm:"index;not null"`
	Variety      string          `gorm:"size:100;not null"`
	HarvestDate  time.Time       `gorm:"type:date;not null"`
	Quantity     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	City         string          `gorm:"size:100;not null"`
	State        string          `gorm:"size:2;not null"`
	CoffeeState  string          `gorm:"size:20;not null"`
	AnalysisDate time.Time       `gorm:"type:date;not null"`
	Decision     string          `gorm:"size:20;not null"`
	Score        float64         `gorm:"not null"`
	ClimateScore float64         `gorm:"not null"`
	PriceScore   float64         `gorm:"not null"`
	MarketScore  float64         `gorm:"not null"`
	Explanation  string          `gorm:"type:text;not null"`
	CreatedAt    time.Time
}

func (AnalysisModel) TableName() string {
	return "analyses"
}

func toModel(a *entity.Analysis) AnalysisModel {
	return AnalysisModel{
		ID:           a.ID,
		UserID:       a.UserID,
		Variety:      string(a.Variety),
		HarvestDate:  a.HarvestDate,
		Quantity:     decimal.NewFromFloat(a.Quantity).Round(2),
		City:         a.City,
		State:        a.State,
		CoffeeState:  string(a.CoffeeState),
		AnalysisDate: a.AnalysisDate,
		Decision:     string(a.Assessment.Decision.Verdict),
		Score:        a.Assessment.Decision.Score,
		ClimateScore: a.Assessment.Scores.Climate,
		PriceScore:   a.Assessment.Scores.Price,
		MarketScore:  a.Assessment.Scores.Market,
		Explanation:  a.Explanation,
	}
}

func toEntity(m AnalysisModel) entity.Analysis {
	return entity.Analysis{
		ID:           m.ID,
		UserID:       m.UserID,
		Variety:      decision.Variety(m.Variety),
		HarvestDate:  m.HarvestDate.UTC(),
		Quantity:     m.Quantity.InexactFloat64(),
		City:         m.City,
		State:        m.State,
		CoffeeState:  decision.CoffeeState(m.CoffeeState),
		AnalysisDate: m.AnalysisDate.UTC(),
		Assessment: decision.Assessment{
			Scores: decision.ScoreTriple{
				Climate: m.ClimateScore,
				Price:   m.PriceScore,
				Market:  m.MarketScore,
			},
			Decision: decision.Decision{Score: m.Score, Verdict: decision.Verdict(m.Decision)},
		},
		Explanation: m.Explanation,
		CreatedAt:   m.CreatedAt,
	}
}

// Create inserts a and fills in its ID and CreatedAt.
func (r *analysisGorm) Create(ctx context.Context, a *entity.Analysis) error {
	m := toModel(a)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	a.ID = m.ID
	a.CreatedAt = m.CreatedAt
	return nil
}

// ListByUser returns the user's analyses, newest first.
func (r *analysisGorm) ListByUser(ctx context.Context, userID uint, skip, limit int) ([]entity.Analysis, error) {
	var rows []AnalysisModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Offset(skip).Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.Analysis, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

func (r *analysisGorm) FindByID(ctx context.Context, id uint) (entity.Analysis, error) {
	var m AnalysisModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.Analysis{}, domain.ErrAnalysisNotFound
		}
		return entity.Analysis{}, err
	}
	return toEntity(m), nil
}

func (r *analysisGorm) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&AnalysisModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAnalysisNotFound
	}
	return nil
}

// DeleteByUser removes every analysis of userID.
func (r *analysisGorm) DeleteByUser(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&AnalysisModel{})
	return res.RowsAffected, res.Error
}
