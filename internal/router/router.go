// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/arthurazevedods/maker-challenge-server/internal/handler"
	"github.com/arthurazevedods/maker-challenge-server/internal/middleware"
	"github.com/arthurazevedods/maker-challenge-server/internal/server"
)

// NewRouter builds the echo instance with the global middleware chain,
// the system routes and the /api routes.
//
// Order matters: the request id must exist before tracing and the
// request logger read it, and the New Relic transaction must exist
// before ContextEnhancer copies its trace ids into the logger.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.RateLimit.Limit(),
	)

	registerSystemRoutes(router, h)

	api := router.Group("/api")
	registerStudentRoutes(api, h.Students)
	registerTeamRoutes(api, h.Teams)

	return router
}
