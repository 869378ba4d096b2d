package openmeteo

// geocodingResponse is the body of GET /v1/search.
type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Elevation float64 `json:"elevation"`
		Timezone  string  `json:"timezone"`
	} `json:"results"`
}

// forecastResponse is the body of GET /v1/forecast with daily variables.
// Every series is aligned with Time; a missing value decodes as nil.
type forecastResponse struct {
	Daily struct {
		Time               []string   `json:"time"`
		TemperatureMax     []*float64 `json:"temperature_2m_max"`
		TemperatureMin     []*float64 `json:"temperature_2m_min"`
		PrecipitationSum   []*float64 `json:"precipitation_sum"`
		PrecipitationHours []*float64 `json:"precipitation_hours"`
		WindspeedMax       []*float64 `json:"windspeed_10m_max"`
	} `json:"daily"`
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}
