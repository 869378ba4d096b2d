package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coffee_backend/internal/feature/decision/domain"
	"coffee_backend/internal/feature/decision/domain/entity"
)

func validInput() Input {
	return Input{
		Climate: spread(14, 20, 15, 5, 10, 12),
		Price: entity.PriceProfile{
			CurrentPrice:   104,
			MovingAverages: points(100, 100, 100),
			QuantitySacks:  200,
			CoffeeState:    entity.StateGreen,
		},
		Reports:     []entity.MarketReport{{Content: "mercado em alta"}},
		Variety:     entity.VarietyArabica,
		State:       entity.StateGreen,
		HarvestDate: daysAgo(90),
		Now:         fixedNow,
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	got, err := Evaluate(validInput())
	require.NoError(t, err)

	assert.Equal(t, 1.0, got.Scores.Climate)
	assert.InDelta(t, 0.65, got.Scores.Price, 1e-9)
	assert.InDelta(t, 0.8, got.Scores.Market, 1e-9)
	// 0.35*1 + 0.40*0.65 + 0.25*0.8
	assert.Equal(t, entity.Decision{Score: 0.81, Verdict: entity.VerdictSell}, got.Decision)
}

func TestEvaluate_InvalidInputsAbort(t *testing.T) {
	t.Parallel()

	t.Run("missing forecast", func(t *testing.T) {
		t.Parallel()

		in := validInput()
		in.Climate = entity.ClimateProfile{Location: "Varginha, MG"}

		got, err := Evaluate(in)
		assert.ErrorIs(t, err, domain.ErrInvalidClimateData)
		assert.Equal(t, entity.Assessment{}, got)
	})

	t.Run("invalid price", func(t *testing.T) {
		t.Parallel()

		in := validInput()
		in.Price.CurrentPrice = 0

		got, err := Evaluate(in)
		assert.ErrorIs(t, err, domain.ErrInvalidPriceData)
		assert.Equal(t, entity.Assessment{}, got)
	})

	t.Run("missing reports are not an error", func(t *testing.T) {
		t.Parallel()

		in := validInput()
		in.Reports = nil

		got, err := Evaluate(in)
		require.NoError(t, err)
		assert.Equal(t, 0.5, got.Scores.Market)
	})
}

func TestEvaluate_Deterministic(t *testing.T) {
	t.Parallel()

	first, err := Evaluate(validInput())
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Evaluate(validInput())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEvaluate_ScoresStayInUnitRange(t *testing.T) {
	t.Parallel()

	varieties := []entity.Variety{entity.VarietyArabica, entity.VarietyRobusta}
	states := []entity.CoffeeState{entity.StateGreen, entity.StateRoasted, entity.StateGround, entity.StateUnspecified}
	rains := []float64{0, 20, 60, 200}
	temps := []float64{5, 20, 26, 40}
	currents := []float64{50, 100, 150}
	reports := [][]entity.MarketReport{nil, {{Content: "alta"}}, {{Content: "queda risco"}}}

	in := validInput()
	for _, v := range varieties {
		for _, s := range states {
			for _, rain := range rains {
				for _, temp := range temps {
					for _, cur := range currents {
						for _, r := range reports {
							in.Variety, in.State = v, s
							in.Climate = spread(14, temp, temp-8, rain, rain, 30)
							in.Price.CurrentPrice = cur
							in.Price.CoffeeState = s
							in.Reports = r

							got, err := Evaluate(in)
							require.NoError(t, err)
							for _, score := range []float64{got.Scores.Climate, got.Scores.Price, got.Scores.Market, got.Decision.Score} {
								assert.GreaterOrEqual(t, score, 0.0)
								assert.LessOrEqual(t, score, 1.0)
							}
						}
					}
				}
			}
		}
	}
}
