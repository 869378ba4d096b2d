package engine

import (
	"fmt"
	"math"

	"coffee_backend/internal/feature/decision/domain"
	"coffee_backend/internal/feature/decision/domain/entity"
)

const (
	minUsablePoints = 3

	largeLotSacks  = 1000
	mediumLotSacks = 500
	smallLotSacks  = 100
)

// priceWindows holds the window means and the current price's deviation from each.
type priceWindows struct {
	values []float64

	overall, w30, w7    float64
	devAll, dev30, dev7 float64
}

func newPriceWindows(current float64, values []float64) priceWindows {
	w := priceWindows{
		values:  values,
		overall: mean(values),
		w30:     windowMean(values, 30),
		w7:      windowMean(values, 7),
	}
	w.devAll, _ = relChange(w.overall, current)
	w.dev30, _ = relChange(w.w30, current)
	w.dev7, _ = relChange(w.w7, current)
	return w
}

// usableAverages drops missing, NaN and non-positive averages, keeping order.
func usableAverages(points []entity.PricePoint) []float64 {
	out := make([]float64, 0, len(points))
	for _, p := range points {
		if p.MovingAverage == nil {
			continue
		}
		v := *p.MovingAverage
		if math.IsNaN(v) || v <= 0 {
			continue
		}
		out = append(out, v)
	}
	return out
}

// ScorePrice scores how favorable the current price is for selling, given the
// moving-average history. Being above history favors selling; a strong rising
// trend favors holding.
func ScorePrice(p entity.PriceProfile) (float64, error) {
	if p.CurrentPrice <= 0 || math.IsNaN(p.CurrentPrice) {
		return 0, fmt.Errorf("%w: current price must be positive, got %v", domain.ErrInvalidPriceData, p.CurrentPrice)
	}
	if len(p.MovingAverages) == 0 {
		return 0, fmt.Errorf("%w: no moving averages", domain.ErrInvalidPriceData)
	}
	values := usableAverages(p.MovingAverages)
	if len(values) < minUsablePoints {
		return 0, fmt.Errorf("%w: %d usable moving averages, need %d", domain.ErrInvalidPriceData, len(values), minUsablePoints)
	}

	w := newPriceWindows(p.CurrentPrice, values)

	score := 0.5
	score += levelAdjustment(w)
	score += longTermTrendAdjustment(values)
	score += shortTermTrendAdjustment(w)
	score += volatilityAdjustment(w)
	score += momentumAdjustment(values)
	score += dispersionAdjustment(p.CurrentPrice, p.StdDeviation, w)
	score += lotSizeAdjustment(p.QuantitySacks, w)
	score += priceStateAdjustment(p.CoffeeState, w)

	return clamp01(score), nil
}

func levelAdjustment(w priceWindows) float64 {
	var adj float64
	switch {
	case w.devAll > 0.05:
		adj += 0.20
	case w.devAll < -0.05:
		adj -= 0.15
	}
	switch {
	case w.dev30 > 0.03:
		adj += 0.15
	case w.dev30 < -0.03:
		adj -= 0.10
	}
	return adj
}

// longTermTrend compares the first 30 points with the last 30.
func longTermTrend(values []float64) (float64, bool) {
	if len(values) < 60 {
		return 0, false
	}
	return relChange(mean(values[:30]), mean(tail(values, 30)))
}

func longTermTrendAdjustment(values []float64) float64 {
	trend, ok := longTermTrend(values)
	if !ok {
		return 0
	}
	switch {
	case trend > 0.15:
		return -0.20
	case trend < -0.15:
		return 0.30
	case trend > -0.08 && trend < 0.08:
		return 0.05
	}
	return 0
}

// shortTermTrendAdjustment compares the week before last with the last week.
func shortTermTrendAdjustment(w priceWindows) float64 {
	n := len(w.values)
	if n < 15 {
		return 0
	}
	trend, ok := relChange(mean(w.values[n-15:n-8]), w.w7)
	if !ok {
		return 0
	}
	switch {
	case trend > 0.10:
		return -0.15
	case trend < -0.10:
		return 0.25
	}
	return 0
}

func volatilityAdjustment(w priceWindows) float64 {
	last30 := tail(w.values, 30)
	if last30 == nil {
		return 0
	}
	m := mean(last30)
	if m == 0 {
		return 0
	}
	lo, hi := minMax(last30)
	vol := (hi - lo) / m
	switch {
	case vol > 0.20:
		if w.dev7 > 0 {
			return 0.15
		}
		return -0.10
	case vol < 0.08 && w.dev30 > 0.05:
		return 0.10
	}
	return 0
}

// momentumAdjustment looks at two successive 3-point deltas to detect acceleration.
func momentumAdjustment(values []float64) float64 {
	n := len(values)
	if n < 7 {
		return 0
	}
	recent := values[n-1] - values[n-4]
	prior := values[n-4] - values[n-7]
	switch {
	case recent > 0 && prior > 0 && recent > prior*1.2:
		return -0.10
	case recent < 0 && prior < 0 && recent < prior*1.2:
		return 0.15
	}
	return 0
}

func dispersionAdjustment(current float64, std *float64, w priceWindows) float64 {
	if std == nil || *std <= 0 || math.IsNaN(*std) || w.overall == 0 {
		return 0
	}
	z := (current - w.overall) / *std
	var adj float64
	switch {
	case z > 1.5:
		adj += 0.20
	case z > 1.0:
		adj += 0.15
	case z < -1.5:
		adj -= 0.20
	case z < -1.0:
		adj -= 0.15
	}
	cv := *std / w.overall
	switch {
	case cv > 0.15 && z > 0.5:
		adj += 0.10
	case cv < 0.05 && w.dev30 > 0.02:
		adj += 0.08
	}
	return adj
}

// lotSizeAdjustment: large lots lock in good prices, small lots can afford to wait.
func lotSizeAdjustment(sacks float64, w priceWindows) float64 {
	switch {
	case sacks >= largeLotSacks:
		switch {
		case w.dev30 > 0.03:
			return 0.15
		case w.dev30 < -0.03:
			return -0.10
		}
	case sacks >= mediumLotSacks:
		if w.dev30 > 0 {
			return 0.08
		}
	case sacks < smallLotSacks:
		if trend, ok := longTermTrend(w.values); ok && trend > 0.05 {
			return -0.10
		}
	}
	return 0
}

func priceStateAdjustment(state entity.CoffeeState, w priceWindows) float64 {
	switch {
	case state.IsProcessed():
		adj := 0.15
		if w.dev7 > 0.05 {
			adj += 0.10
		}
		return adj
	case state == entity.StateGreen:
		n := len(w.values)
		if n < 30 {
			return 0
		}
		trend, ok := relChange(mean(w.values[n-30:n-15]), mean(w.values[n-15:]))
		if ok && trend > 0.08 {
			return -0.08
		}
	}
	return 0
}
