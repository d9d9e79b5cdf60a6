package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/arthurazevedods/maker-challenge-server/internal/model"
	"github.com/arthurazevedods/maker-challenge-server/internal/server"
	"github.com/arthurazevedods/maker-challenge-server/internal/service"
)

// TeamHandler serves /api/equipes.
type TeamHandler struct {
	Handler
	teams *service.TeamService
}

func NewTeamHandler(s *server.Server, teams *service.TeamService) *TeamHandler {
	return &TeamHandler{
		Handler: NewHandler(s),
		teams:   teams,
	}
}

func (h *TeamHandler) ListTeams(c echo.Context, _ *model.EmptyPayload) ([]model.TeamWithMembers, error) {
	return h.teams.ListTeams(c.Request().Context())
}

func (h *TeamHandler) GetTeam(c echo.Context, req *model.GetByIDPayload) (*model.TeamWithMembers, error) {
	return h.teams.GetTeam(c.Request().Context(), req.ID)
}

// CreateTeam receives a payload whose nome and membros shape were
// validated; member ids are checked by the service.
func (h *TeamHandler) CreateTeam(c echo.Context, req *model.CreateTeamPayload) (*model.Team, error) {
	return h.teams.CreateTeam(c.Request().Context(), req)
}
