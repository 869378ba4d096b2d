// Package engine turns a forecast, a price history and market reports into a
// sell/wait decision. Every function here is pure: no I/O, no clock, no shared
// state, so calls for independent requests may run concurrently.
package engine

import (
	"time"

	"coffee_backend/internal/feature/decision/domain/entity"
)

// Input is everything one decision needs.
type Input struct {
	Climate     entity.ClimateProfile
	Price       entity.PriceProfile
	Reports     []entity.MarketReport
	Variety     entity.Variety
	State       entity.CoffeeState
	HarvestDate string
	Now         time.Time
}

// Evaluate scores the three signals and combines them. A climate or price error
// aborts the evaluation; no partial decision is returned.
func Evaluate(in Input) (entity.Assessment, error) {
	climate, err := ScoreClimate(in.Climate, in.Variety, in.State, in.HarvestDate, in.Now)
	if err != nil {
		return entity.Assessment{}, err
	}
	price, err := ScorePrice(in.Price)
	if err != nil {
		return entity.Assessment{}, err
	}
	market := ScoreMarket(in.Reports, in.State, in.Variety)

	scores := entity.ScoreTriple{Climate: climate, Price: price, Market: market}
	return entity.Assessment{
		Scores:   scores,
		Decision: Combine(scores.Climate, scores.Price, scores.Market),
	}, nil
}
