// Package handler provides the HTTP handlers of the climate feature.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"coffee_backend/internal/api"
	"coffee_backend/internal/feature/climate/domain"
	"coffee_backend/internal/feature/climate/domain/entity"
	"coffee_backend/internal/feature/climate/transport/http/dto"
	httpx "coffee_backend/internal/platform/http"
)

type ClimateUsecase interface {
	Forecast(ctx context.Context, city, state string) (entity.Forecast, error)
}

type ClimateHandler struct {
	uc ClimateUsecase
}

func NewClimateHandler(uc ClimateUsecase) *ClimateHandler {
	return &ClimateHandler{uc: uc}
}

// Forecast handles GET /climate/forecast?city=Lavras&state=MG.
func (h *ClimateHandler) Forecast(c *gin.Context) {
	city, state := c.Query("city"), c.Query("state")

	f, err := h.uc.Forecast(c.Request.Context(), city, state)
	switch {
	case errors.Is(err, domain.ErrMissingLocation):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, domain.ErrLocationNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		httpx.Logger(c.Request.Context()).Warn("forecast failed", "city", city, "state", state, "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "forecast provider unavailable"})
		return
	}
	c.JSON(http.StatusOK, dto.NewForecastResponse(f))
}
