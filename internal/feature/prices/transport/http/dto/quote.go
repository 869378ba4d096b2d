// Package dto defines the request and response bodies of the prices endpoints.
package dto

import (
	openapi_types "github.com/oapi-codegen/runtime/types"

	decision "coffee_backend/internal/feature/decision/domain/entity"
	"coffee_backend/internal/feature/prices/domain/entity"
)

// QuoteResponse is one stored daily quote.
type QuoteResponse struct {
	Variety string             `json:"variety"`
	Date    openapi_types.Date `json:"date"`
	Price   float64            `json:"price"`
}

// NewQuoteResponses converts quotes to their wire form, keeping the order.
func NewQuoteResponses(quotes []entity.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, QuoteResponse{
			Variety: string(q.Variety),
			Date:    openapi_types.Date{Time: q.Date},
			Price:   q.Price,
		})
	}
	return out
}

// RecordQuoteRequest is the body of POST /prices/:variety.
type RecordQuoteRequest struct {
	Date  openapi_types.Date `json:"date" binding:"required"`
	Price float64            `json:"price" binding:"required,gt=0"`
}

// ProfileResponse is the price input the decision engine would receive.
type ProfileResponse struct {
	Variety string `json:"variety"`
	decision.PriceProfile
}
