// Package entity defines the domain models for the prices feature.
package entity

import (
	"time"

	decision "coffee_backend/internal/feature/decision/domain/entity"
)

// Quote is one daily price for a coffee variety, in BRL per 60kg sack.
type Quote struct {
	Variety decision.Variety
	Date    time.Time // calendar day, UTC midnight
	Price   float64
}
