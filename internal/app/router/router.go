package router

import (
	"github.com/gin-gonic/gin"

	analysishandler "coffee_backend/internal/feature/analysis/transport/handler"
	authhandler "coffee_backend/internal/feature/auth/transport/handler"
	climatehandler "coffee_backend/internal/feature/climate/transport/handler"
	pricehandler "coffee_backend/internal/feature/prices/transport/handler"
	reportshandler "coffee_backend/internal/feature/reports/transport/handler"
	httpx "coffee_backend/internal/platform/http"
	"coffee_backend/internal/platform/http/handler"
	jwtmw "coffee_backend/internal/platform/jwt"
)

// Handlers groups every feature handler the router mounts.
type Handlers struct {
	Auth     *authhandler.AuthHandler
	Prices   *pricehandler.PriceHandler
	Climate  *climatehandler.ClimateHandler
	Reports  *reportshandler.SearchHandler
	Analysis *analysishandler.AnalysisHandler
}

// NewRouter mounts the public and the JWT-protected routes.
func NewRouter(h Handlers, jwtSecret string, checks map[string]handler.Check) *gin.Engine {
	r := gin.Default()
	r.Use(httpx.RequestID())

	// liveness
	r.GET("/healthz", handler.Health)
	r.GET("/health", handler.Health)
	r.GET("/health/full", handler.Full(checks))

	r.POST("/signup", h.Auth.Signup)
	r.POST("/login", h.Auth.Login)

	r.GET("/prices/:variety", h.Prices.History)
	r.GET("/prices/:variety/profile", h.Prices.Profile)
	r.GET("/climate/forecast", h.Climate.Forecast)
	r.POST("/rag/search", h.Reports.Search)

	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(jwtSecret))
	{
		auth.GET("/me", h.Auth.Me)
		auth.PUT("/me/password", h.Auth.ChangePassword)
		auth.DELETE("/me", h.Auth.DeleteMe)

		auth.POST("/prices/:variety", h.Prices.Record)

		auth.POST("/analyses", h.Analysis.Create)
		auth.GET("/analyses", h.Analysis.List)
		auth.GET("/analyses/:id", h.Analysis.Get)
		auth.DELETE("/analyses/:id", h.Analysis.Delete)
	}

	return r
}
