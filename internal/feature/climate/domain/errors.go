// Package domain defines domain-level errors for the climate feature.
package domain

import "errors"

var (
	// ErrMissingLocation indicates an empty city.
	ErrMissingLocation = errors.New("city is required")

	// ErrLocationNotFound indicates geocoding returned no result, even after the fallback query.
	ErrLocationNotFound = errors.New("location not found")

	// ErrForecastUnavailable indicates the forecast provider failed or answered with an unusable body.
	ErrForecastUnavailable = errors.New("forecast unavailable")
)
