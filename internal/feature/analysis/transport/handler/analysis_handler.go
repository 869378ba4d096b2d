// Package handler provides the HTTP handlers of the analysis feature.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"coffee_backend/internal/api"
	"coffee_backend/internal/feature/analysis/domain"
	"coffee_backend/internal/feature/analysis/domain/entity"
	"coffee_backend/internal/feature/analysis/transport/http/dto"
	"coffee_backend/internal/feature/analysis/usecase"
	decisiondomain "coffee_backend/internal/feature/decision/domain"
	httpx "coffee_backend/internal/platform/http"
	jwtmw "coffee_backend/internal/platform/jwt"
)

type AnalysisUsecase interface {
	Analyze(ctx context.Context, userID uint, req usecase.Request) (usecase.Result, error)
	List(ctx context.Context, userID uint, skip, limit int) ([]entity.Analysis, error)
	Get(ctx context.Context, userID, id uint) (entity.Analysis, error)
	Delete(ctx context.Context, userID, id uint) error
}

// AnalysisHandler serves /analyses. Every route runs behind jwtmw.AuthRequired.
type AnalysisHandler struct {
	uc AnalysisUsecase
}

func NewAnalysisHandler(uc AnalysisUsecase) *AnalysisHandler {
	return &AnalysisHandler{uc: uc}
}

// Create handles POST /analyses.
func (h *AnalysisHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	res, err := h.uc.Analyze(c.Request.Context(), userID, req.ToUsecase())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAnalyzeResponse(res))
}

// List handles GET /analyses?skip=0&limit=100.
func (h *AnalysisHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(usecase.DefaultPageSize)))

	list, err := h.uc.List(c.Request.Context(), userID, skip, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAnalysisList(list))
}

// Get handles GET /analyses/:id.
func (h *AnalysisHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	a, err := h.uc.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAnalysisResponse(a))
}

// Delete handles DELETE /analyses/:id.
func (h *AnalysisHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), userID, id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AnalysisHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrAnalysisNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "analysis not found"})
	case errors.Is(err, domain.ErrSourceUnavailable):
		httpx.Logger(c.Request.Context()).Warn("analysis source unavailable", "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, decisiondomain.ErrInvalidClimateData), errors.Is(err, decisiondomain.ErrInvalidPriceData):
		c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error()})
	default:
		httpx.Logger(c.Request.Context()).Error("analysis request failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}

func currentUser(c *gin.Context) (uint, bool) {
	id, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return 0, false
	}
	return id, true
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return uint(id), true
}
