package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arthurazevedods/maker-challenge-server/internal/handler"
	"github.com/arthurazevedods/maker-challenge-server/internal/model"
)

func registerStudentRoutes(api *echo.Group, h *handler.StudentHandler) {
	students := api.Group("/alunos")

	students.GET("", handler.Handle(h.Handler, h.ListStudents, http.StatusOK, newEmptyPayload))
	students.GET("/:id", handler.Handle(h.Handler, h.GetStudent, http.StatusOK, newGetByIDPayload))
	students.POST("", handler.Handle(h.Handler, h.CreateStudents, http.StatusCreated,
		func() *model.CreateStudentsPayload { return &model.CreateStudentsPayload{} }))
}

func registerTeamRoutes(api *echo.Group, h *handler.TeamHandler) {
	teams := api.Group("/equipes")

	teams.GET("", handler.Handle(h.Handler, h.ListTeams, http.StatusOK, newEmptyPayload))
	teams.GET("/:id", handler.Handle(h.Handler, h.GetTeam, http.StatusOK, newGetByIDPayload))
	teams.POST("", handler.Handle(h.Handler, h.CreateTeam, http.StatusCreated,
		func() *model.CreateTeamPayload { return &model.CreateTeamPayload{} }))
}
