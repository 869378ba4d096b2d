package engine

import "coffee_backend/internal/feature/decision/domain/entity"

const (
	ClimateWeight = 0.35
	PriceWeight   = 0.40
	MarketWeight  = 0.25

	// SellThreshold is the lowest combined score that yields SELL.
	SellThreshold = 0.5
)

// Combine weights the three sub-scores into the final decision.
// The verdict is final; explanation text produced later never changes it.
func Combine(climate, price, market float64) entity.Decision {
	score := round3(climate*ClimateWeight + price*PriceWeight + market*MarketWeight)
	return entity.Decision{Score: score, Verdict: Classify(score)}
}

// Classify applies the sell threshold to a score.
func Classify(score float64) entity.Verdict {
	if score >= SellThreshold {
		return entity.VerdictSell
	}
	return entity.VerdictWait
}
