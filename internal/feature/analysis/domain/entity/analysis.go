// Package entity defines the domain models for the analysis feature.
package entity

import (
	"time"

	decision "coffee_backend/internal/feature/decision/domain/entity"
)

// Analysis is a stored decision for one coffee lot.
type Analysis struct {
	ID           uint
	UserID       uint
	Variety      decision.Variety
	HarvestDate  time.Time
	Quantity     float64 // 60kg sacks
	City         string
	State        string
	CoffeeState  decision.CoffeeState
	AnalysisDate time.Time
	Assessment   decision.Assessment
	Explanation  string
	CreatedAt    time.Time
}
