package repository

import (
	"context"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/arthurazevedods/maker-challenge-server/internal/model"
	"github.com/arthurazevedods/maker-challenge-server/internal/mongoerr"
)

func teamDoc(team model.Team) bson.D {
	members := bson.A{}
	for _, id := range team.Members {
		members = append(members, id)
	}
	return bson.D{{Key: "_id", Value: team.ID}, {Key: "nome", Value: team.Name}, {Key: "membros", Value: members}}
}

func TestTeamRepository_InsertOne(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("stores members in order", func(mt *mtest.T) {
		repo := NewTeamRepository(mt.Coll, nopLogger(), 0)
		team := &model.Team{
			ID:      primitive.NewObjectID(),
			Name:    "Time1",
			Members: []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()},
		}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		if err := repo.InsertOne(context.Background(), team); err != nil {
			mt.Fatalf("InsertOne: %v", err)
		}

		cmd := startedCommand(mt, "insert")
		docs, err := cmd.Lookup("documents").Array().Values()
		if err != nil || len(docs) != 1 {
			mt.Fatalf("documents = %v (%v)", docs, err)
		}

		doc := docs[0].Document()
		if id, ok := doc.Lookup("_id").ObjectIDOK(); !ok || id != team.ID {
			mt.Fatalf("_id = %v", doc.Lookup("_id"))
		}
		members, err := doc.Lookup("membros").Array().Values()
		if err != nil || len(members) != 2 {
			mt.Fatalf("membros = %v (%v)", members, err)
		}
		for i, m := range members {
			if id, ok := m.ObjectIDOK(); !ok || id != team.Members[i] {
				mt.Fatalf("membros[%d] = %v", i, m)
			}
		}
	})
}

func TestTeamRepository_FindAll(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes member ids", func(mt *mtest.T) {
		repo := NewTeamRepository(mt.Coll, nopLogger(), 0)
		team := model.Team{ID: primitive.NewObjectID(), Name: "Time1", Members: []primitive.ObjectID{primitive.NewObjectID()}}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, teamDoc(team)))

		got, err := repo.FindAll(context.Background())
		if err != nil {
			mt.Fatalf("FindAll: %v", err)
		}
		if len(got) != 1 || got[0].ID != team.ID || got[0].Name != "Time1" ||
			len(got[0].Members) != 1 || got[0].Members[0] != team.Members[0] {
			mt.Fatalf("got %+v", got)
		}
	})

	mt.Run("empty collection", func(mt *mtest.T) {
		repo := NewTeamRepository(mt.Coll, nopLogger(), 0)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		got, err := repo.FindAll(context.Background())
		if err != nil || got == nil || len(got) != 0 {
			mt.Fatalf("got %#v, %v", got, err)
		}
	})
}

func TestTeamRepository_FindByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("missing maps to 404", func(mt *mtest.T) {
		repo := NewTeamRepository(mt.Coll, nopLogger(), 0)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		_, err := repo.FindByID(context.Background(), primitive.NewObjectID())
		if !errors.Is(err, mongo.ErrNoDocuments) {
			mt.Fatalf("expected a wrapped mongo.ErrNoDocuments, got %v", err)
		}

		entity := mongoerr.Entity{Name: "team", NotFound: "Equipe não encontrada"}
		httpErr := mongoerr.HandleError(err, entity, "Erro ao buscar a equipe")
		if httpErr.Status != http.StatusNotFound || httpErr.Message != "Equipe não encontrada" {
			mt.Fatalf("unexpected error %+v", httpErr)
		}
	})
}
