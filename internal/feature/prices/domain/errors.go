// Package domain defines domain-level errors for the prices feature.
package domain

import "errors"

var (
	// ErrUnknownVariety indicates a variety other than arabica or robusta.
	ErrUnknownVariety = errors.New("unknown coffee variety")

	// ErrNoPrices indicates there is no stored quote for the variety.
	ErrNoPrices = errors.New("no prices recorded")

	// ErrInvalidQuote indicates a non-positive price or a missing date.
	ErrInvalidQuote = errors.New("invalid quote")

	// ErrQuoteNotFound indicates the quotation page has no table for the variety.
	ErrQuoteNotFound = errors.New("quote not found on source page")
)
