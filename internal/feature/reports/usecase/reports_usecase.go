// Package usecase implements the business logic of the reports feature.
package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	decision "coffee_backend/internal/feature/decision/domain/entity"
	"coffee_backend/internal/feature/reports/domain"
	"coffee_backend/internal/feature/reports/domain/entity"
)

const (
	DefaultTopK = 5
	MaxTopK     = 50
)

// Searcher runs a semantic search over the indexed reports.
type Searcher interface {
	Search(ctx context.Context, query string, k int) ([]entity.Document, error)
}

type reportsUsecase struct {
	searcher Searcher
	topK     int
}

// NewReportsUsecase creates the reports usecase. topK <= 0 uses DefaultTopK.
func NewReportsUsecase(searcher Searcher, topK int) *reportsUsecase {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &reportsUsecase{searcher: searcher, topK: topK}
}

// Search returns up to k documents. k outside 1..MaxTopK uses the configured default.
func (u *reportsUsecase) Search(ctx context.Context, query string, k int) ([]entity.Document, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}
	if k <= 0 || k > MaxTopK {
		k = u.topK
	}
	return u.searcher.Search(ctx, query, k)
}

// MarketReports searches with the analysis query and converts the hits to engine input.
func (u *reportsUsecase) MarketReports(ctx context.Context, q Query) ([]decision.MarketReport, error) {
	docs, err := u.Search(ctx, q.String(), u.topK)
	if err != nil {
		return nil, err
	}
	return ToMarketReports(docs), nil
}

// Query describes the lot being analysed.
type Query struct {
	Variety     decision.Variety
	City        string
	State       string
	HarvestDate string
	CoffeeState decision.CoffeeState
}

func (q Query) String() string {
	return fmt.Sprintf("café %s região %s %s colheita %s qualidade %s preço mercado recomendação venda",
		q.Variety, q.City, q.State, q.HarvestDate, q.CoffeeState)
}

func ToMarketReports(docs []entity.Document) []decision.MarketReport {
	out := make([]decision.MarketReport, 0, len(docs))
	for _, d := range docs {
		out = append(out, decision.MarketReport{Content: d.Text, Metadata: d.Metadata})
	}
	return out
}

// Sources lists the distinct "file" metadata values of reports, sorted.
func Sources(reports []decision.MarketReport) []string {
	seen := make(map[string]struct{})
	for _, r := range reports {
		if f := r.Metadata["file"]; f != "" {
			seen[f] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
