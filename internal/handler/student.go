package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/arthurazevedods/maker-challenge-server/internal/model"
	"github.com/arthurazevedods/maker-challenge-server/internal/server"
	"github.com/arthurazevedods/maker-challenge-server/internal/service"
)

// StudentHandler serves /api/alunos.
type StudentHandler struct {
	Handler
	students *service.StudentService
}

func NewStudentHandler(s *server.Server, students *service.StudentService) *StudentHandler {
	return &StudentHandler{
		Handler:  NewHandler(s),
		students: students,
	}
}

func (h *StudentHandler) ListStudents(c echo.Context, _ *model.EmptyPayload) ([]model.Student, error) {
	return h.students.ListStudents(c.Request().Context())
}

func (h *StudentHandler) GetStudent(c echo.Context, req *model.GetByIDPayload) (*model.Student, error) {
	return h.students.GetStudent(c.Request().Context(), req.ID)
}

// CreateStudents inserts a validated batch; the payload already rejected
// non-array bodies and elements without nome.
func (h *StudentHandler) CreateStudents(c echo.Context, req *model.CreateStudentsPayload) ([]model.Student, error) {
	return h.students.CreateStudents(c.Request().Context(), req.Students)
}
