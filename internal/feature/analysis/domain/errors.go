// Package domain defines domain-level errors for the analysis feature.
package domain

import "errors"

var (
	// ErrAnalysisNotFound is returned for a missing analysis and for one owned by another user.
	ErrAnalysisNotFound = errors.New("analysis not found")

	// ErrInvalidRequest indicates an analysis request with missing or malformed fields.
	ErrInvalidRequest = errors.New("invalid analysis request")

	// ErrSourceUnavailable indicates a collaborator failed and the engine could not
	// decide without its data.
	ErrSourceUnavailable = errors.New("data source unavailable")
)
