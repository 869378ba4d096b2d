// Package openmeteo is a client for the Open-Meteo geocoding and forecast APIs.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"coffee_backend/internal/feature/climate/domain"
	"coffee_backend/internal/feature/climate/domain/entity"
	"coffee_backend/internal/feature/climate/usecase"
	decision "coffee_backend/internal/feature/decision/domain/entity"
)

const defaultTimezone = "America/Sao_Paulo"

var dailyVariables = []string{
	"temperature_2m_max",
	"temperature_2m_min",
	"precipitation_sum",
	"precipitation_hours",
	"windspeed_10m_max",
}

// Doer sends HTTP requests; *http.Client and the breaker client both satisfy it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds the two API endpoints.
type Config struct {
	ForecastURL  string
	GeocodingURL string
}

// Client implements the climate usecase's Geocoder and ForecastSource.
type Client struct {
	cfg    Config
	client Doer
}

var (
	_ usecase.Geocoder       = (*Client)(nil)
	_ usecase.ForecastSource = (*Client)(nil)
)

func NewClient(cfg Config, client Doer) *Client {
	return &Client{cfg: cfg, client: client}
}

// Locate resolves "City-ST" to coordinates. Known coffee-region cities are answered
// locally; others go to the geocoding API, retried once as "City, Brazil".
func (c *Client) Locate(ctx context.Context, place string) (entity.Location, error) {
	if loc, ok := knownCity(place); ok {
		return loc, nil
	}

	loc, found, err := c.geocode(ctx, place)
	if err != nil {
		return entity.Location{}, err
	}
	if found {
		return loc, nil
	}

	city := strings.TrimSpace(strings.Split(strings.Split(place, "-")[0], ",")[0])
	loc, found, err = c.geocode(ctx, city+", Brazil")
	if err != nil {
		return entity.Location{}, err
	}
	if !found {
		return entity.Location{}, fmt.Errorf("%w: %s", domain.ErrLocationNotFound, place)
	}
	return loc, nil
}

func (c *Client) geocode(ctx context.Context, name string) (entity.Location, bool, error) {
	q := url.Values{}
	q.Set("name", name)
	q.Set("count", "1")
	q.Set("language", "pt")
	q.Set("format", "json")

	var body geocodingResponse
	if err := c.getJSON(ctx, c.cfg.GeocodingURL+"?"+q.Encode(), &body); err != nil {
		return entity.Location{}, false, err
	}
	if len(body.Results) == 0 {
		return entity.Location{}, false, nil
	}
	r := body.Results[0]
	tz := r.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	return entity.Location{
		Name:      r.Name,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Timezone:  tz,
		Elevation: r.Elevation,
	}, true, nil
}

// DailyForecast fetches up to days daily forecasts. Null values stay nil.
func (c *Client) DailyForecast(ctx context.Context, loc entity.Location, days int) ([]decision.ForecastDay, error) {
	tz := loc.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	q.Set("timezone", tz)
	q.Set("daily", strings.Join(dailyVariables, ","))
	q.Set("forecast_days", strconv.Itoa(days))

	var body forecastResponse
	if err := c.getJSON(ctx, c.cfg.ForecastURL+"?"+q.Encode(), &body); err != nil {
		return nil, err
	}
	if body.Error {
		return nil, fmt.Errorf("%w: %s", domain.ErrForecastUnavailable, body.Reason)
	}

	d := body.Daily
	out := make([]decision.ForecastDay, 0, len(d.Time))
	for i, date := range d.Time {
		out = append(out, decision.ForecastDay{
			Date:               date,
			TempMax:            at(d.TemperatureMax, i),
			TempMin:            at(d.TemperatureMin, i),
			PrecipitationMM:    at(d.PrecipitationSum, i),
			PrecipitationHours: at(d.PrecipitationHours, i),
			WindMax:            at(d.WindspeedMax, i),
		})
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrForecastUnavailable, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return fmt.Errorf("%w: open-meteo http %d", domain.ErrForecastUnavailable, res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", domain.ErrForecastUnavailable, err)
	}
	return nil
}

// at tolerates series shorter than the time axis.
func at(series []*float64, i int) *float64 {
	if i >= len(series) {
		return nil
	}
	return series[i]
}
