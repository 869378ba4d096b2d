package engine

import (
	"fmt"
	"time"

	"coffee_backend/internal/feature/decision/domain"
	"coffee_backend/internal/feature/decision/domain/entity"
)

const (
	// ForecastWindowDays is how many forecast days are aggregated.
	ForecastWindowDays = 14

	defaultTempMax = 20.0
	defaultTempMin = 15.0
	defaultWind    = 10.0

	harvestDateLayout = "2006-01-02"
)

// tempBand holds the variety-specific temperature thresholds.
type tempBand struct {
	idealMaxLo, idealMaxHi float64
	minFloor               float64
	hotCeiling             float64
}

var tempBands = map[entity.Variety]tempBand{
	entity.VarietyArabica: {idealMaxLo: 18, idealMaxHi: 22, minFloor: 13, hotCeiling: 32},
	entity.VarietyRobusta: {idealMaxLo: 22, idealMaxHi: 28, minFloor: 15, hotCeiling: 35},
}

// climateAggregate is the 14-day summary the climate rules read.
type climateAggregate struct {
	avgMax, avgMin float64
	precipMM       float64
	precipHours    float64
	avgWind        float64
}

func aggregateForecast(days []entity.ForecastDay) climateAggregate {
	if len(days) > ForecastWindowDays {
		days = days[:ForecastWindowDays]
	}
	var a climateAggregate
	for _, d := range days {
		a.avgMax += valueOr(d.TempMax, defaultTempMax)
		a.avgMin += valueOr(d.TempMin, defaultTempMin)
		a.precipMM += valueOr(d.PrecipitationMM, 0)
		a.precipHours += valueOr(d.PrecipitationHours, 0)
		a.avgWind += valueOr(d.WindMax, defaultWind)
	}
	n := float64(len(days))
	a.avgMax /= n
	a.avgMin /= n
	a.avgWind /= n
	return a
}

// ScoreClimate scores how favorable the coming weather is for selling.
// harvestDate is YYYY-MM-DD; when it is empty or unparsable the harvest-age rule
// is skipped. now is passed in so callers control the clock.
func ScoreClimate(profile entity.ClimateProfile, variety entity.Variety, state entity.CoffeeState, harvestDate string, now time.Time) (float64, error) {
	if len(profile.Forecast) == 0 {
		return 0, fmt.Errorf("%w: forecast has no daily entries", domain.ErrInvalidClimateData)
	}
	a := aggregateForecast(profile.Forecast)

	score := 0.5
	score += temperatureAdjustment(a, variety)
	score += precipitationAdjustment(a.precipMM)
	score += precipHoursAdjustment(a.precipHours)
	score += windAdjustment(a.avgWind)
	score += storageAdjustment(a.precipMM, state)
	score += harvestAgeAdjustment(harvestDate, now)

	return clamp01(score), nil
}

func temperatureAdjustment(a climateAggregate, variety entity.Variety) float64 {
	band, ok := tempBands[variety]
	if !ok {
		band = tempBands[entity.VarietyArabica]
	}
	switch {
	case a.avgMax >= band.idealMaxLo && a.avgMax <= band.idealMaxHi && a.avgMin >= band.minFloor:
		return 0.25
	case a.avgMax > band.hotCeiling || a.avgMin < band.minFloor:
		return -0.30
	default:
		return -0.15
	}
}

func precipitationAdjustment(mm float64) float64 {
	switch {
	case mm < 10:
		return 0.30
	case mm < 30:
		return 0.10
	case mm > 80:
		return -0.35
	case mm > 50:
		return -0.20
	}
	return 0
}

func precipHoursAdjustment(hours float64) float64 {
	switch {
	case hours > 48:
		return -0.15
	case hours == 0:
		return 0.10
	}
	return 0
}

func windAdjustment(kmh float64) float64 {
	switch {
	case kmh > 20:
		return -0.10
	case kmh >= 10 && kmh <= 18:
		return 0.05
	}
	return 0
}

// storageAdjustment penalizes rain for lots that absorb moisture.
// Processed coffee is more sensitive than green beans.
func storageAdjustment(mm float64, state entity.CoffeeState) float64 {
	switch {
	case state == entity.StateGreen:
		if mm > 30 {
			return -0.20
		}
		if mm < 10 {
			return 0.15
		}
	case state.IsProcessed():
		if mm > 20 {
			return -0.30
		}
		if mm < 5 {
			return 0.20
		}
	}
	return 0
}

func harvestAgeAdjustment(harvestDate string, now time.Time) float64 {
	if harvestDate == "" {
		return 0
	}
	harvested, err := time.Parse(harvestDateLayout, harvestDate)
	if err != nil {
		return 0
	}
	days := int(now.Sub(harvested).Hours() / 24)
	switch {
	case days > 180:
		return 0.15
	case days >= 120:
		return 0.10
	case days < 30:
		return -0.05
	}
	return 0
}
