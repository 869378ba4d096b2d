// Package handler provides the HTTP handler of the report search proxy.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"coffee_backend/internal/api"
	"coffee_backend/internal/feature/reports/domain"
	"coffee_backend/internal/feature/reports/domain/entity"
	"coffee_backend/internal/feature/reports/transport/http/dto"
	httpx "coffee_backend/internal/platform/http"
)

type ReportsUsecase interface {
	Search(ctx context.Context, query string, k int) ([]entity.Document, error)
}

type SearchHandler struct {
	uc ReportsUsecase
}

func NewSearchHandler(uc ReportsUsecase) *SearchHandler {
	return &SearchHandler{uc: uc}
}

// Search handles POST /rag/search with {"query": "...", "k": 4}.
func (h *SearchHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	docs, err := h.uc.Search(c.Request.Context(), req.Query, req.K)
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		httpx.Logger(c.Request.Context()).Warn("report search failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "report search unavailable"})
		return
	}
	c.JSON(http.StatusOK, dto.NewSearchResponse(docs))
}
