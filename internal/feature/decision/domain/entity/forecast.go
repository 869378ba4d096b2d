package entity

// ForecastDay is one day of the daily forecast. Numeric fields are nil when the
// provider did not report them.
type ForecastDay struct {
	Date               string   `json:"date"`
	TempMax            *float64 `json:"temp_max"`
	TempMin            *float64 `json:"temp_min"`
	PrecipitationMM    *float64 `json:"precipitation_mm"`
	PrecipitationHours *float64 `json:"precipitation_hours"`
	WindMax            *float64 `json:"wind_max"`
}

// ClimateProfile is the forecast for the producer's location, soonest day first.
type ClimateProfile struct {
	Location string        `json:"location,omitempty"`
	Forecast []ForecastDay `json:"forecast"`
}
