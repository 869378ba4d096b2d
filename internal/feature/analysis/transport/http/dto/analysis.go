// Package dto defines the request and response bodies of the analysis endpoints.
package dto

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"coffee_backend/internal/feature/analysis/domain/entity"
	"coffee_backend/internal/feature/analysis/usecase"
	decision "coffee_backend/internal/feature/decision/domain/entity"
)

// AnalyzeRequest is the body of POST /analyses.
type AnalyzeRequest struct {
	Variety     string             `json:"variety" binding:"required,max=100"`
	HarvestDate openapi_types.Date `json:"harvest_date" binding:"required"`
	Quantity    float64            `json:"quantity" binding:"required,gt=0,lt=100000000"`
	City        string             `json:"city" binding:"required,max=100"`
	State       string             `json:"state" binding:"required,len=2"`
	CoffeeState string             `json:"coffee_state" binding:"max=20"`
}

func (r AnalyzeRequest) ToUsecase() usecase.Request {
	return usecase.Request{
		Variety:     r.Variety,
		HarvestDate: r.HarvestDate.Time,
		Quantity:    r.Quantity,
		City:        r.City,
		State:       r.State,
		CoffeeState: r.CoffeeState,
	}
}

type AnalysisResponse struct {
	ID           uint                 `json:"id"`
	Variety      string               `json:"variety"`
	HarvestDate  openapi_types.Date   `json:"harvest_date"`
	Quantity     float64              `json:"quantity"`
	City         string               `json:"city"`
	State        string               `json:"state"`
	CoffeeState  string               `json:"coffee_state"`
	AnalysisDate openapi_types.Date   `json:"analysis_date"`
	Scores       decision.ScoreTriple `json:"scores"`
	Decision     decision.Decision    `json:"decision"`
	Explanation  string               `json:"explanation"`
	CreatedAt    time.Time            `json:"created_at"`
}

func NewAnalysisResponse(a entity.Analysis) AnalysisResponse {
	return AnalysisResponse{
		ID:           a.ID,
		Variety:      string(a.Variety),
		HarvestDate:  openapi_types.Date{Time: a.HarvestDate},
		Quantity:     a.Quantity,
		City:         a.City,
		State:        a.State,
		CoffeeState:  string(a.CoffeeState),
		AnalysisDate: openapi_types.Date{Time: a.AnalysisDate},
		Scores:       a.Assessment.Scores,
		Decision:     a.Assessment.Decision,
		Explanation:  a.Explanation,
		CreatedAt:    a.CreatedAt,
	}
}

func NewAnalysisList(list []entity.Analysis) []AnalysisResponse {
	out := make([]AnalysisResponse, 0, len(list))
	for _, a := range list {
		out = append(out, NewAnalysisResponse(a))
	}
	return out
}

// AnalyzeResponse adds what is reported only when the analysis is created.
type AnalyzeResponse struct {
	AnalysisResponse
	Sources           []string `json:"sources"`
	ExplanationSource string   `json:"explanation_source"`
}

func NewAnalyzeResponse(r usecase.Result) AnalyzeResponse {
	sources := r.Sources
	if sources == nil {
		sources = []string{}
	}
	return AnalyzeResponse{
		AnalysisResponse:  NewAnalysisResponse(r.Analysis),
		Sources:           sources,
		ExplanationSource: string(r.ExplanationSource),
	}
}
