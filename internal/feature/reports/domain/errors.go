// Package domain defines domain-level errors for the reports feature.
package domain

import "errors"

var (
	// ErrEmptyQuery indicates a search without query text.
	ErrEmptyQuery = errors.New("query is required")

	// ErrSearchUnavailable indicates the document search service failed.
	ErrSearchUnavailable = errors.New("report search unavailable")
)
