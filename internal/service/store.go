package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arthurazevedods/maker-challenge-server/internal/model"
)

// StudentStore is the persistence the student and team services need.
// *repository.StudentRepository implements it.
type StudentStore interface {
	InsertMany(ctx context.Context, students []model.Student) ([]model.Student, error)
	FindAll(ctx context.Context) ([]model.Student, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Student, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.Student, error)
}

// TeamStore is implemented by *repository.TeamRepository.
type TeamStore interface {
	InsertOne(ctx context.Context, team *model.Team) error
	FindAll(ctx context.Context) ([]model.Team, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Team, error)
}

// TeamEvents receives teams after they were persisted.
// *job.JobService implements it.
type TeamEvents interface {
	EnqueueTeamCreated(ctx context.Context, team *model.Team) error
}
