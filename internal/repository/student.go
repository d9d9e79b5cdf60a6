package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arthurazevedods/maker-challenge-server/internal/model"
)

// StudentRepository reads and writes the alunos collection.
type StudentRepository struct {
	collection *mongo.Collection
	timer      queryTimer
}

func NewStudentRepository(collection *mongo.Collection, logger *zerolog.Logger, slow time.Duration) *StudentRepository {
	return &StudentRepository{
		collection: collection,
		timer:      queryTimer{logger: logger, collection: collection.Name(), threshold: slow},
	}
}

// InsertMany inserts the batch in one ordered call and returns it.
// Every student must already carry its id.
func (r *StudentRepository) InsertMany(ctx context.Context, students []model.Student) ([]model.Student, error) {
	defer r.timer.observe("insert_many", time.Now())

	docs := make([]interface{}, len(students))
	for i := range students {
		docs[i] = students[i]
	}

	if _, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return nil, errors.Wrap(err, "insert students")
	}

	return students, nil
}

// FindAll returns every student in natural order; never nil.
func (r *StudentRepository) FindAll(ctx context.Context) ([]model.Student, error) {
	defer r.timer.observe("find_all", time.Now())

	return r.find(ctx, bson.D{})
}

// FindByID returns the student with id, or an error wrapping mongo.ErrNoDocuments.
func (r *StudentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Student, error) {
	defer r.timer.observe("find_by_id", time.Now())

	var student model.Student
	if err := r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&student); err != nil {
		return nil, errors.Wrapf(err, "find student %s", id.Hex())
	}

	return &student, nil
}

// FindByIDs returns the students whose id is in ids, in no particular order.
// Unknown ids are skipped and duplicates in ids match once.
func (r *StudentRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.Student, error) {
	defer r.timer.observe("find_by_ids", time.Now())

	if len(ids) == 0 {
		return []model.Student{}, nil
	}

	return r.find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
}

func (r *StudentRepository) find(ctx context.Context, filter bson.D) ([]model.Student, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "find students")
	}

	students := []model.Student{}
	if err := cursor.All(ctx, &students); err != nil {
		return nil, errors.Wrap(err, "decode students")
	}

	return students, nil
}
