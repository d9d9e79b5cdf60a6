package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/arthurazevedods/maker-challenge-server/internal/model"
)

// TeamRepository reads and writes the equipes collection.
// Member ids are stored as-is; expansion happens in the service.
type TeamRepository struct {
	collection *mongo.Collection
	timer      queryTimer
}

func NewTeamRepository(collection *mongo.Collection, logger *zerolog.Logger, slow time.Duration) *TeamRepository {
	return &TeamRepository{
		collection: collection,
		timer:      queryTimer{logger: logger, collection: collection.Name(), threshold: slow},
	}
}

// InsertOne stores the team. The team must already carry its id.
func (r *TeamRepository) InsertOne(ctx context.Context, team *model.Team) error {
	defer r.timer.observe("insert_one", time.Now())

	if _, err := r.collection.InsertOne(ctx, team); err != nil {
		return errors.Wrap(err, "insert team")
	}
	return nil
}

// FindAll returns every team in natural order; never nil.
func (r *TeamRepository) FindAll(ctx context.Context) ([]model.Team, error) {
	defer r.timer.observe("find_all", time.Now())

	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrap(err, "find teams")
	}

	teams := []model.Team{}
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, errors.Wrap(err, "decode teams")
	}

	return teams, nil
}

// FindByID returns the team with id, or an error wrapping mongo.ErrNoDocuments.
func (r *TeamRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Team, error) {
	defer r.timer.observe("find_by_id", time.Now())

	var team model.Team
	if err := r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&team); err != nil {
		return nil, errors.Wrapf(err, "find team %s", id.Hex())
	}

	return &team, nil
}
