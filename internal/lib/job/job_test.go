package job

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arthurazevedods/maker-challenge-server/internal/model"
)

func TestNewTeamCreatedTask(t *testing.T) {
	team := &model.Team{
		ID:      primitive.NewObjectID(),
		Name:    "Time1",
		Members: []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()},
	}
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	task, err := NewTeamCreatedTask(NewTeamCreatedPayload(team, now))
	if err != nil {
		t.Fatalf("NewTeamCreatedTask: %v", err)
	}
	if task.Type() != TaskTeamCreated {
		t.Fatalf("task type = %q", task.Type())
	}

	var got TeamCreatedPayload
	if err := json.Unmarshal(task.Payload(), &got); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if got.TeamID != team.ID.Hex() || got.TeamName != "Time1" {
		t.Fatalf("unexpected payload %+v", got)
	}
	if len(got.MemberIDs) != 2 || got.MemberIDs[1] != team.Members[1].Hex() {
		t.Fatalf("member ids = %v", got.MemberIDs)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("created_at = %v", got.CreatedAt)
	}
}

func TestHandleTeamCreatedTask(t *testing.T) {
	logger := zerolog.Nop()
	j := &JobService{logger: &logger}

	payload, _ := json.Marshal(TeamCreatedPayload{TeamID: "abc", TeamName: "Time1"})
	if err := j.handleTeamCreatedTask(context.Background(), asynq.NewTask(TaskTeamCreated, payload)); err != nil {
		t.Fatalf("handler: %v", err)
	}

	err := j.handleTeamCreatedTask(context.Background(), asynq.NewTask(TaskTeamCreated, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("malformed payload should skip retry, got %v", err)
	}
}
