package service

import (
	"context"

	"github.com/newrelic/go-agent/v3/newrelic"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arthurazevedods/maker-challenge-server/internal/errs"
	"github.com/arthurazevedods/maker-challenge-server/internal/model"
	"github.com/arthurazevedods/maker-challenge-server/internal/mongoerr"
)

var studentEntity = mongoerr.Entity{
	Name:      "student",
	NotFound:  "Aluno não encontrado",
	Duplicate: "Já existe um aluno com este identificador",
}

type StudentService struct {
	students StudentStore
}

func NewStudentService(students StudentStore) *StudentService {
	return &StudentService{students: students}
}

func (s *StudentService) ListStudents(ctx context.Context) ([]model.Student, error) {
	students, err := s.students.FindAll(ctx)
	if err != nil {
		return nil, mongoerr.HandleError(err, studentEntity, "Erro ao buscar os alunos")
	}
	return students, nil
}

// GetStudent looks a student up by its hex id. An id that is not an
// ObjectID cannot name a stored student and is reported as not found.
func (s *StudentService) GetStudent(ctx context.Context, id string) (*model.Student, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.NewNotFoundError(studentEntity.NotFound, nil)
	}

	student, err := s.students.FindByID(ctx, objectID)
	if err != nil {
		return nil, mongoerr.HandleError(err, studentEntity, "Erro ao buscar o aluno")
	}
	return student, nil
}

// CreateStudents assigns a fresh id to every input and inserts the batch
// in one call. The result has the same length and order as inputs.
func (s *StudentService) CreateStudents(ctx context.Context, inputs []model.StudentInput) ([]model.Student, error) {
	if len(inputs) == 0 {
		return []model.Student{}, nil
	}

	if txn := newrelic.FromContext(ctx); txn != nil {
		txn.AddAttribute("students.batch_size", len(inputs))
	}

	students := make([]model.Student, len(inputs))
	for i, input := range inputs {
		students[i] = input.ToStudent()
		students[i].ID = primitive.NewObjectID()
	}

	created, err := s.students.InsertMany(ctx, students)
	if err != nil {
		return nil, mongoerr.HandleError(err, studentEntity, "Erro ao adicionar os alunos")
	}
	return created, nil
}
