package handler

import (
	"github.com/arthurazevedods/maker-challenge-server/internal/server"
	"github.com/arthurazevedods/maker-challenge-server/internal/service"
)

// Handlers groups all HTTP handlers so router setup receives one object.
type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	Students *StudentHandler
	Teams    *TeamHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		Students: NewStudentHandler(s, services.Students),
		Teams:    NewTeamHandler(s, services.Teams),
	}
}
