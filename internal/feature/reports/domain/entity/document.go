// Package entity defines the domain models for the reports feature.
package entity

// Document is one retrieved chunk of a market report.
type Document struct {
	Text     string
	Metadata map[string]string
	// Distance is the vector distance to the query; nil when the service omits it.
	Distance *float64
}
