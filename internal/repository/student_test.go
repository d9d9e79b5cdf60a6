package repository

import (
	"context"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/arthurazevedods/maker-challenge-server/internal/model"
	"github.com/arthurazevedods/maker-challenge-server/internal/mongoerr"
)

var studentEntity = mongoerr.Entity{Name: "student", NotFound: "Aluno não encontrado"}

func nopLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func studentDoc(s model.Student) bson.D {
	doc := bson.D{{Key: "_id", Value: s.ID}, {Key: "nome", Value: s.Name}}
	if s.Class != "" {
		doc = append(doc, bson.E{Key: "turma", Value: s.Class})
	}
	return doc
}

// startedCommand returns the next command sent to the mock deployment.
func startedCommand(mt *mtest.T, name string) bson.Raw {
	mt.Helper()

	started := mt.GetStartedEvent()
	if started == nil {
		mt.Fatalf("no %s command was sent", name)
	}
	if started.CommandName != name {
		mt.Fatalf("command = %q, want %q", started.CommandName, name)
	}
	return started.Command
}

func TestStudentRepository_InsertMany(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("ordered batch keeps ids and order", func(mt *mtest.T) {
		repo := NewStudentRepository(mt.Coll, nopLogger(), 0)
		students := []model.Student{
			{ID: primitive.NewObjectID(), Name: "Ana"},
			{ID: primitive.NewObjectID(), Name: "Leo", Class: "A"},
		}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 2}))

		got, err := repo.InsertMany(context.Background(), students)
		if err != nil {
			mt.Fatalf("InsertMany: %v", err)
		}
		if len(got) != 2 || got[0].ID != students[0].ID || got[1].ID != students[1].ID {
			mt.Fatalf("returned %+v", got)
		}

		cmd := startedCommand(mt, "insert")
		if ordered, ok := cmd.Lookup("ordered").BooleanOK(); !ok || !ordered {
			mt.Fatalf("insert must be ordered: %s", cmd)
		}

		docs, err := cmd.Lookup("documents").Array().Values()
		if err != nil || len(docs) != 2 {
			mt.Fatalf("documents = %v (%v)", docs, err)
		}
		for i, doc := range docs {
			if id, ok := doc.Document().Lookup("_id").ObjectIDOK(); !ok || id != students[i].ID {
				mt.Fatalf("document %d _id = %v, want %s", i, doc.Document().Lookup("_id"), students[i].ID.Hex())
			}
			if nome, _ := doc.Document().Lookup("nome").StringValueOK(); nome != students[i].Name {
				mt.Fatalf("document %d nome = %q", i, nome)
			}
		}
		if _, err := docs[0].Document().LookupErr("turma"); err == nil {
			mt.Fatalf("empty turma must not be stored")
		}
	})

	mt.Run("duplicate key maps to 400", func(mt *mtest.T) {
		repo := NewStudentRepository(mt.Coll, nopLogger(), 0)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   1,
			Code:    11000,
			Message: "E11000 duplicate key error collection: alunos index: _id_",
		}))

		_, err := repo.InsertMany(context.Background(), []model.Student{
			{ID: primitive.NewObjectID(), Name: "Ana"},
			{ID: primitive.NewObjectID(), Name: "Leo"},
		})
		if err == nil {
			mt.Fatalf("expected a write error")
		}

		httpErr := mongoerr.HandleError(err, studentEntity, "Erro ao adicionar os alunos")
		if httpErr.Status != http.StatusBadRequest || httpErr.Code != "STUDENT_ALREADY_EXISTS" {
			mt.Fatalf("unexpected error %+v", httpErr)
		}
	})

	mt.Run("command error maps to 500 with details", func(mt *mtest.T) {
		repo := NewStudentRepository(mt.Coll, nopLogger(), 0)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized on maker to execute command",
		}))

		_, err := repo.InsertMany(context.Background(), []model.Student{{ID: primitive.NewObjectID(), Name: "Ana"}})

		httpErr := mongoerr.HandleError(err, studentEntity, "Erro ao adicionar os alunos")
		if httpErr.Status != http.StatusInternalServerError || httpErr.Details == "" {
			mt.Fatalf("unexpected error %+v", httpErr)
		}
	})
}

func TestStudentRepository_FindByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		repo := NewStudentRepository(mt.Coll, nopLogger(), 0)
		ana := model.Student{ID: primitive.NewObjectID(), Name: "Ana", Class: "A"}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, studentDoc(ana)))

		got, err := repo.FindByID(context.Background(), ana.ID)
		if err != nil {
			mt.Fatalf("FindByID: %v", err)
		}
		if *got != ana {
			mt.Fatalf("got %+v, want %+v", *got, ana)
		}

		cmd := startedCommand(mt, "find")
		if id, ok := cmd.Lookup("filter", "_id").ObjectIDOK(); !ok || id != ana.ID {
			mt.Fatalf("filter = %s", cmd.Lookup("filter"))
		}
	})

	mt.Run("missing maps to 404", func(mt *mtest.T) {
		repo := NewStudentRepository(mt.Coll, nopLogger(), 0)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		_, err := repo.FindByID(context.Background(), primitive.NewObjectID())
		if !errors.Is(err, mongo.ErrNoDocuments) {
			mt.Fatalf("expected a wrapped mongo.ErrNoDocuments, got %v", err)
		}

		httpErr := mongoerr.HandleError(err, studentEntity, "Erro ao buscar o aluno")
		if httpErr.Status != http.StatusNotFound || httpErr.Message != "Aluno não encontrado" {
			mt.Fatalf("unexpected error %+v", httpErr)
		}
	})
}

func TestStudentRepository_FindByIDs(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate and unknown ids", func(mt *mtest.T) {
		repo := NewStudentRepository(mt.Coll, nopLogger(), 0)
		ana := model.Student{ID: primitive.NewObjectID(), Name: "Ana"}
		unknown := primitive.NewObjectID()

		// The server matches each stored document once, however often
		// its id appears in $in.
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, studentDoc(ana)))

		got, err := repo.FindByIDs(context.Background(), []primitive.ObjectID{ana.ID, ana.ID, unknown})
		if err != nil {
			mt.Fatalf("FindByIDs: %v", err)
		}
		if len(got) != 1 || got[0].ID != ana.ID || got[0].Name != "Ana" {
			mt.Fatalf("got %+v", got)
		}

		cmd := startedCommand(mt, "find")
		in, err := cmd.Lookup("filter", "_id", "$in").Array().Values()
		if err != nil {
			mt.Fatalf("filter has no _id.$in: %s", cmd.Lookup("filter"))
		}
		want := []primitive.ObjectID{ana.ID, ana.ID, unknown}
		if len(in) != len(want) {
			mt.Fatalf("$in = %v, want %d ids", in, len(want))
		}
		for i, v := range in {
			if id, ok := v.ObjectIDOK(); !ok || id != want[i] {
				mt.Fatalf("$in[%d] = %v, want %s", i, v, want[i].Hex())
			}
		}
	})

	mt.Run("no match is an empty slice", func(mt *mtest.T) {
		repo := NewStudentRepository(mt.Coll, nopLogger(), 0)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		got, err := repo.FindByIDs(context.Background(), []primitive.ObjectID{primitive.NewObjectID()})
		if err != nil {
			mt.Fatalf("FindByIDs: %v", err)
		}
		if got == nil || len(got) != 0 {
			mt.Fatalf("expected empty non-nil slice, got %#v", got)
		}
	})

	mt.Run("no ids skips the query", func(mt *mtest.T) {
		repo := NewStudentRepository(mt.Coll, nopLogger(), 0)

		got, err := repo.FindByIDs(context.Background(), nil)
		if err != nil || got == nil || len(got) != 0 {
			mt.Fatalf("got %#v, %v", got, err)
		}
		if started := mt.GetStartedEvent(); started != nil {
			mt.Fatalf("unexpected %s command", started.CommandName)
		}
	})
}

func TestStudentRepository_FindAll(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes in natural order", func(mt *mtest.T) {
		repo := NewStudentRepository(mt.Coll, nopLogger(), 0)
		ana := model.Student{ID: primitive.NewObjectID(), Name: "Ana"}
		leo := model.Student{ID: primitive.NewObjectID(), Name: "Leo", Class: "B"}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, studentDoc(ana), studentDoc(leo)))

		got, err := repo.FindAll(context.Background())
		if err != nil {
			mt.Fatalf("FindAll: %v", err)
		}
		if len(got) != 2 || got[0] != ana || got[1] != leo {
			mt.Fatalf("got %+v", got)
		}
	})
}
