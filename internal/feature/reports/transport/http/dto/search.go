// Package dto defines the request and response bodies of the report search endpoint.
package dto

import "coffee_backend/internal/feature/reports/domain/entity"

type SearchRequest struct {
	Query string `json:"query" binding:"required"`
	K     int    `json:"k" binding:"omitempty,min=1,max=50"`
}

type SearchResult struct {
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata"`
	Distance *float64          `json:"distance,omitempty"`
}

type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

func NewSearchResponse(docs []entity.Document) SearchResponse {
	out := SearchResponse{Results: make([]SearchResult, 0, len(docs))}
	for _, d := range docs {
		md := d.Metadata
		if md == nil {
			md = map[string]string{}
		}
		out.Results = append(out.Results, SearchResult{Text: d.Text, Metadata: md, Distance: d.Distance})
	}
	return out
}
