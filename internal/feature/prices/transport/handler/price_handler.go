// Package handler provides the HTTP handlers of the prices feature.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"coffee_backend/internal/api"
	decision "coffee_backend/internal/feature/decision/domain/entity"
	"coffee_backend/internal/feature/prices/domain"
	"coffee_backend/internal/feature/prices/domain/entity"
	"coffee_backend/internal/feature/prices/transport/http/dto"
	httpx "coffee_backend/internal/platform/http"
)

// PricesUsecase is what the handler needs from the prices usecase.
type PricesUsecase interface {
	History(ctx context.Context, variety decision.Variety, days int) ([]entity.Quote, error)
	Profile(ctx context.Context, variety decision.Variety, quantitySacks float64, state decision.CoffeeState) (decision.PriceProfile, error)
	Record(ctx context.Context, q entity.Quote) error
}

// PriceHandler serves stored quotations.
type PriceHandler struct {
	uc    PricesUsecase
	parse func(string) (decision.Variety, error)
}

// NewPriceHandler creates a PriceHandler. parse validates the :variety path segment.
func NewPriceHandler(uc PricesUsecase, parse func(string) (decision.Variety, error)) *PriceHandler {
	return &PriceHandler{uc: uc, parse: parse}
}

// History handles GET /prices/:variety?days=90.
func (h *PriceHandler) History(c *gin.Context) {
	variety, ok := h.variety(c)
	if !ok {
		return
	}
	// invalid or missing days falls back to the configured window
	days, _ := strconv.Atoi(c.Query("days"))

	quotes, err := h.uc.History(c.Request.Context(), variety, days)
	if err != nil {
		httpx.Logger(c.Request.Context()).Error("price history failed", "variety", variety, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load prices"})
		return
	}
	c.JSON(http.StatusOK, dto.NewQuoteResponses(quotes))
}

// Profile handles GET /prices/:variety/profile?quantity=100&state=green.
func (h *PriceHandler) Profile(c *gin.Context) {
	variety, ok := h.variety(c)
	if !ok {
		return
	}
	quantity := 0.0
	if q := c.Query("quantity"); q != "" {
		v, err := strconv.ParseFloat(q, 64)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "quantity must be a non-negative number"})
			return
		}
		quantity = v
	}
	state := decision.ParseCoffeeState(c.Query("state"))

	profile, err := h.uc.Profile(c.Request.Context(), variety, quantity, state)
	switch {
	case errors.Is(err, domain.ErrNoPrices):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		httpx.Logger(c.Request.Context()).Error("price profile failed", "variety", variety, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to build price profile"})
		return
	}
	c.JSON(http.StatusOK, dto.ProfileResponse{Variety: string(variety), PriceProfile: profile})
}

// Record handles POST /prices/:variety. It requires authentication.
func (h *PriceHandler) Record(c *gin.Context) {
	variety, ok := h.variety(c)
	if !ok {
		return
	}
	var req dto.RecordQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	q := entity.Quote{Variety: variety, Date: req.Date.Time, Price: req.Price}
	if err := h.uc.Record(c.Request.Context(), q); err != nil {
		if errors.Is(err, domain.ErrInvalidQuote) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		httpx.Logger(c.Request.Context()).Error("record quote failed", "variety", variety, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to record quote"})
		return
	}
	c.JSON(http.StatusCreated, dto.NewQuoteResponses([]entity.Quote{q})[0])
}

func (h *PriceHandler) variety(c *gin.Context) (decision.Variety, bool) {
	v, err := h.parse(c.Param("variety"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return "", false
	}
	return v, true
}
