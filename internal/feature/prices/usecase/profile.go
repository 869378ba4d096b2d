package usecase

import (
	"fmt"
	"math"
	"slices"

	decision "coffee_backend/internal/feature/decision/domain/entity"
	"coffee_backend/internal/feature/prices/domain/entity"
)

const (
	blockDays    = 3
	maxPeriods   = 30
	periodLayout = "02/01/2006"
)

// BuildProfile turns quotes (newest first) into a PriceProfile. The current price is
// the newest quote.
func BuildProfile(newestFirst []entity.Quote, quantitySacks float64, state decision.CoffeeState) decision.PriceProfile {
	chrono := slices.Clone(newestFirst)
	slices.Reverse(chrono)

	return decision.PriceProfile{
		CurrentPrice:   newestFirst[0].Price,
		MovingAverages: MovingAverages(chrono),
		StdDeviation:   StdDeviation(chrono),
		QuantitySacks:  quantitySacks,
		CoffeeState:    state,
	}
}

// MovingAverages averages consecutive 3-day blocks of chronological quotes.
// A trailing block with fewer than 3 quotes is dropped and at most 30 periods are kept.
func MovingAverages(chrono []entity.Quote) []decision.PricePoint {
	out := make([]decision.PricePoint, 0, len(chrono)/blockDays)
	for i := 0; i+blockDays <= len(chrono) && len(out) < maxPeriods; i += blockDays {
		block := chrono[i : i+blockDays]
		var sum float64
		for _, q := range block {
			sum += q.Price
		}
		avg := math.Round(sum/blockDays*100) / 100
		out = append(out, decision.PricePoint{
			Period: fmt.Sprintf("%s a %s",
				block[0].Date.Format(periodLayout),
				block[blockDays-1].Date.Format(periodLayout)),
			MovingAverage: &avg,
		})
	}
	return out
}

// StdDeviation is the population standard deviation of the prices, or nil with
// fewer than two quotes.
func StdDeviation(quotes []entity.Quote) *float64 {
	if len(quotes) < 2 {
		return nil
	}
	var sum float64
	for _, q := range quotes {
		sum += q.Price
	}
	m := sum / float64(len(quotes))
	var sq float64
	for _, q := range quotes {
		sq += (q.Price - m) * (q.Price - m)
	}
	std := math.Sqrt(sq / float64(len(quotes)))
	return &std
}
