// Package usecase implements the business logic of the climate feature.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"coffee_backend/internal/feature/climate/domain"
	"coffee_backend/internal/feature/climate/domain/entity"
	decision "coffee_backend/internal/feature/decision/domain/entity"
)

// ForecastDays is the forecast horizon requested from the provider.
const ForecastDays = 14

// Geocoder resolves a place name to coordinates.
type Geocoder interface {
	Locate(ctx context.Context, place string) (entity.Location, error)
}

// ForecastSource returns up to days daily forecasts for a location.
type ForecastSource interface {
	DailyForecast(ctx context.Context, loc entity.Location, days int) ([]decision.ForecastDay, error)
}

type climateUsecase struct {
	geocoder Geocoder
	source   ForecastSource
}

// NewClimateUsecase creates the climate usecase.
func NewClimateUsecase(geocoder Geocoder, source ForecastSource) *climateUsecase {
	return &climateUsecase{geocoder: geocoder, source: source}
}

// Forecast geocodes city/state and fetches its 14-day forecast.
func (u *climateUsecase) Forecast(ctx context.Context, city, state string) (entity.Forecast, error) {
	if strings.TrimSpace(city) == "" {
		return entity.Forecast{}, domain.ErrMissingLocation
	}
	place := entity.Place(city, state)

	loc, err := u.geocoder.Locate(ctx, place)
	if err != nil {
		return entity.Forecast{}, fmt.Errorf("locate %q: %w", place, err)
	}
	days, err := u.source.DailyForecast(ctx, loc, ForecastDays)
	if err != nil {
		return entity.Forecast{}, fmt.Errorf("forecast %q: %w", place, err)
	}
	loc.Name = place
	return entity.Forecast{Location: loc, Days: days}, nil
}

// ClimateProfile is Forecast reduced to the engine's input.
func (u *climateUsecase) ClimateProfile(ctx context.Context, city, state string) (decision.ClimateProfile, error) {
	f, err := u.Forecast(ctx, city, state)
	if err != nil {
		return decision.ClimateProfile{}, err
	}
	return f.Profile(), nil
}
