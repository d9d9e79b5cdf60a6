package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arthurazevedods/maker-challenge-server/internal/handler"
	"github.com/arthurazevedods/maker-challenge-server/internal/model"
)

// registerSystemRoutes registers endpoints that are not part of the API:
// the root acknowledgment, dependency status and the API docs.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", handler.HandleText(h.Health.Handler, h.Health.Ack, http.StatusOK, newEmptyPayload))

	r.GET("/status", h.Health.CheckHealth)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.GET("/docs/openapi.json", h.OpenAPI.ServeOpenAPISpec)
}

func newEmptyPayload() *model.EmptyPayload {
	return &model.EmptyPayload{}
}

func newGetByIDPayload() *model.GetByIDPayload {
	return &model.GetByIDPayload{}
}
