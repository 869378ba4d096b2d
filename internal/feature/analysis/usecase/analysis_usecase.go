// Package usecase orchestrates a sell/wait analysis: it gathers the forecast, the
// price profile and the market reports, runs the decision engine, asks for an
// explanation and stores the result.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"coffee_backend/internal/feature/analysis/domain"
	"coffee_backend/internal/feature/analysis/domain/entity"
	climatedomain "coffee_backend/internal/feature/climate/domain"
	decisiondomain "coffee_backend/internal/feature/decision/domain"
	decision "coffee_backend/internal/feature/decision/domain/entity"
	"coffee_backend/internal/feature/decision/engine"
	explanation "coffee_backend/internal/feature/explanation/usecase"
	pricesdomain "coffee_backend/internal/feature/prices/domain"
	reports "coffee_backend/internal/feature/reports/usecase"
	httpx "coffee_backend/internal/platform/http"
)

const (
	DefaultPageSize = 100
	MaxPageSize     = 100
)

// MaxQuantity is the largest lot the analyses table can hold (numeric(10,2)).
var MaxQuantity = decimal.RequireFromString("99999999.99")

type ClimateProvider interface {
	ClimateProfile(ctx context.Context, city, state string) (decision.ClimateProfile, error)
}

type PriceProvider interface {
	Profile(ctx context.Context, variety decision.Variety, quantitySacks float64, state decision.CoffeeState) (decision.PriceProfile, error)
}

type ReportProvider interface {
	MarketReports(ctx context.Context, q reports.Query) ([]decision.MarketReport, error)
}

type Explainer interface {
	Explain(ctx context.Context, req explanation.Request) explanation.Explanation
}

type AnalysisRepository interface {
	Create(ctx context.Context, a *entity.Analysis) error
	ListByUser(ctx context.Context, userID uint, skip, limit int) ([]entity.Analysis, error)
	FindByID(ctx context.Context, id uint) (entity.Analysis, error)
	Delete(ctx context.Context, id uint) error
}

// Request describes the lot to analyse.
type Request struct {
	Variety     string
	HarvestDate time.Time
	Quantity    float64
	City        string
	State       string
	CoffeeState string
}

func (r Request) validate() error {
	var problems []string
	if r.HarvestDate.IsZero() {
		problems = append(problems, "harvest date is required")
	}
	switch {
	case math.IsNaN(r.Quantity) || math.IsInf(r.Quantity, 0) || r.Quantity <= 0:
		problems = append(problems, "quantity must be positive")
	case decimal.NewFromFloat(r.Quantity).Round(2).GreaterThan(MaxQuantity):
		problems = append(problems, fmt.Sprintf("quantity must be at most %s", MaxQuantity))
	}
	if strings.TrimSpace(r.City) == "" {
		problems = append(problems, "city is required")
	}
	if len(strings.TrimSpace(r.State)) != 2 {
		problems = append(problems, "state must be a 2-letter code")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidRequest, strings.Join(problems, "; "))
	}
	return nil
}

// Result is a stored analysis plus what is only reported back to the caller.
type Result struct {
	Analysis          entity.Analysis
	Sources           []string
	ExplanationSource explanation.Source
}

type Deps struct {
	Climate   ClimateProvider
	Prices    PriceProvider
	Reports   ReportProvider
	Explainer Explainer
	Repo      AnalysisRepository
	// Now defaults to time.Now.
	Now func() time.Time
}

type analysisUsecase struct {
	climate   ClimateProvider
	prices    PriceProvider
	reports   ReportProvider
	explainer Explainer
	repo      AnalysisRepository
	now       func() time.Time
}

func NewAnalysisUsecase(d Deps) *analysisUsecase {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &analysisUsecase{
		climate:   d.Climate,
		prices:    d.Prices,
		reports:   d.Reports,
		explainer: d.Explainer,
		repo:      d.Repo,
		now:       now,
	}
}

type gathered struct {
	climate    decision.ClimateProfile
	price      decision.PriceProfile
	reports    []decision.MarketReport
	climateErr error
	priceErr   error
}

// gather fetches the three inputs concurrently. A failed source leaves its value
// empty and never cancels the others.
func (u *analysisUsecase) gather(ctx context.Context, req Request, variety decision.Variety, state decision.CoffeeState) gathered {
	log := httpx.Logger(ctx)
	var out gathered

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := u.climate.ClimateProfile(gctx, req.City, req.State)
		if err != nil {
			log.Warn("climate source failed", "city", req.City, "state", req.State, "error", err)
			out.climateErr = err
			return nil
		}
		out.climate = c
		return nil
	})
	g.Go(func() error {
		p, err := u.prices.Profile(gctx, variety, req.Quantity, state)
		if err != nil {
			log.Warn("price source failed", "variety", variety, "error", err)
			out.priceErr = err
			return nil
		}
		out.price = p
		return nil
	})
	g.Go(func() error {
		q := reports.Query{
			Variety:     variety,
			City:        req.City,
			State:       req.State,
			HarvestDate: req.HarvestDate.Format(time.DateOnly),
			CoffeeState: state,
		}
		r, err := u.reports.MarketReports(gctx, q)
		if err != nil {
			log.Warn("report source failed, market scored neutral", "error", err)
			return nil
		}
		out.reports = r
		return nil
	})
	_ = g.Wait()
	return out
}

// Analyze runs one analysis for userID and stores it. Invalid climate or price data
// aborts before anything is stored.
func (u *analysisUsecase) Analyze(ctx context.Context, userID uint, req Request) (Result, error) {
	if err := req.validate(); err != nil {
		return Result{}, err
	}
	req.City = strings.TrimSpace(req.City)
	req.State = strings.ToUpper(strings.TrimSpace(req.State))
	variety := decision.ParseVariety(req.Variety)
	state := decision.ParseCoffeeState(req.CoffeeState)
	now := u.now().UTC()

	in := u.gather(ctx, req, variety, state)

	input := engine.Input{
		Climate:     in.climate,
		Price:       in.price,
		Reports:     in.reports,
		Variety:     variety,
		State:       state,
		HarvestDate: req.HarvestDate.Format(time.DateOnly),
		Now:         now,
	}
	assessment, err := engine.Evaluate(input)
	if err != nil {
		return Result{}, sourceError(err, in)
	}

	expl := u.explainer.Explain(ctx, explanation.Request{
		Input:      input,
		City:       req.City,
		State:      req.State,
		Assessment: assessment,
	})

	a := entity.Analysis{
		UserID:       userID,
		Variety:      variety,
		HarvestDate:  dateOnly(req.HarvestDate),
		Quantity:     req.Quantity,
		City:         req.City,
		State:        req.State,
		CoffeeState:  state,
		AnalysisDate: dateOnly(now),
		Assessment:   assessment,
		Explanation:  expl.Text,
	}
	if err := u.repo.Create(ctx, &a); err != nil {
		return Result{}, fmt.Errorf("save analysis: %w", err)
	}

	httpx.Logger(ctx).Info("analysis completed",
		"analysis_id", a.ID, "user_id", userID, "variety", variety,
		"score", assessment.Decision.Score, "verdict", assessment.Decision.Verdict,
		"explanation_source", expl.Source)

	return Result{
		Analysis:          a,
		Sources:           reports.Sources(in.reports),
		ExplanationSource: expl.Source,
	}, nil
}

// sourceError attaches the collaborator failure behind an engine rejection. Missing
// data that is the caller's problem (unknown city, no stored prices) stays a plain
// engine error.
func sourceError(engineErr error, in gathered) error {
	var src error
	switch {
	case errors.Is(engineErr, decisiondomain.ErrInvalidClimateData):
		src = in.climateErr
	case errors.Is(engineErr, decisiondomain.ErrInvalidPriceData):
		src = in.priceErr
	}
	if src == nil {
		return engineErr
	}
	if errors.Is(src, climatedomain.ErrLocationNotFound) || errors.Is(src, pricesdomain.ErrNoPrices) {
		return fmt.Errorf("%w: %v", engineErr, src)
	}
	return fmt.Errorf("%w: %w: %v", engineErr, domain.ErrSourceUnavailable, src)
}

func (u *analysisUsecase) List(ctx context.Context, userID uint, skip, limit int) ([]entity.Analysis, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > MaxPageSize {
		limit = DefaultPageSize
	}
	return u.repo.ListByUser(ctx, userID, skip, limit)
}

// Get returns the analysis only if userID owns it.
func (u *analysisUsecase) Get(ctx context.Context, userID, id uint) (entity.Analysis, error) {
	a, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return entity.Analysis{}, err
	}
	if a.UserID != userID {
		return entity.Analysis{}, domain.ErrAnalysisNotFound
	}
	return a, nil
}

func (u *analysisUsecase) Delete(ctx context.Context, userID, id uint) error {
	if _, err := u.Get(ctx, userID, id); err != nil {
		return err
	}
	return u.repo.Delete(ctx, id)
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
