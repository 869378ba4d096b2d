// Package domain defines domain-level errors for the decision engine.
package domain

import "errors"

var (
	// ErrInvalidClimateData indicates the forecast is missing, empty or malformed.
	// The climate sub-score cannot be computed and no decision may be produced.
	ErrInvalidClimateData = errors.New("invalid climate data")

	// ErrInvalidPriceData indicates a non-positive current price or fewer than 3
	// usable moving averages.
	ErrInvalidPriceData = errors.New("invalid price data")
)
