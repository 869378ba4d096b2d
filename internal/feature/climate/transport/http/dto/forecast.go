// Package dto defines the response bodies of the climate endpoints.
package dto

import (
	"coffee_backend/internal/feature/climate/domain/entity"
	decision "coffee_backend/internal/feature/decision/domain/entity"
)

type ForecastResponse struct {
	Location  string                 `json:"location"`
	Latitude  float64                `json:"latitude"`
	Longitude float64                `json:"longitude"`
	Timezone  string                 `json:"timezone"`
	Elevation float64                `json:"elevation"`
	Forecast  []decision.ForecastDay `json:"forecast"`
}

func NewForecastResponse(f entity.Forecast) ForecastResponse {
	days := f.Days
	if days == nil {
		days = []decision.ForecastDay{}
	}
	return ForecastResponse{
		Location:  f.Location.Name,
		Latitude:  f.Location.Latitude,
		Longitude: f.Location.Longitude,
		Timezone:  f.Location.Timezone,
		Elevation: f.Location.Elevation,
		Forecast:  days,
	}
}
