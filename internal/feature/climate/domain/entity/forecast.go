// Package entity defines the domain models for the climate feature.
package entity

import (
	"fmt"
	"strings"

	decision "coffee_backend/internal/feature/decision/domain/entity"
)

// Location is a geocoded place.
type Location struct {
	Name      string
	Latitude  float64
	Longitude float64
	Timezone  string
	Elevation float64
}

// Forecast is the daily forecast for a location, oldest day first.
type Forecast struct {
	Location Location
	Days     []decision.ForecastDay
}

// Profile returns the engine's climate input.
func (f Forecast) Profile() decision.ClimateProfile {
	return decision.ClimateProfile{Location: f.Location.Name, Forecast: f.Days}
}

// Place formats city and state as "City-ST", the key used by the known-cities table.
func Place(city, state string) string {
	city = strings.TrimSpace(city)
	state = strings.ToUpper(strings.TrimSpace(state))
	if state == "" {
		return city
	}
	return fmt.Sprintf("%s-%s", city, state)
}
