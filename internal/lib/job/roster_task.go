package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"github.com/arthurazevedods/maker-challenge-server/internal/model"
)

const (
	// TaskTeamCreated is the job type name stored in Redis.
	// Asynq uses task type strings to route to handlers.
	TaskTeamCreated = "roster:team_created"
)

// TeamCreatedPayload is the JSON payload of the roster audit task.
type TeamCreatedPayload struct {
	TeamID    string    `json:"team_id"`
	TeamName  string    `json:"team_name"`
	MemberIDs []string  `json:"member_ids"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTeamCreatedPayload captures the ids of a freshly inserted team.
func NewTeamCreatedPayload(team *model.Team, now time.Time) TeamCreatedPayload {
	members := make([]string, len(team.Members))
	for i, id := range team.Members {
		members[i] = id.Hex()
	}

	return TeamCreatedPayload{
		TeamID:    team.ID.Hex(),
		TeamName:  team.Name,
		MemberIDs: members,
		CreatedAt: now.UTC(),
	}
}

// NewTeamCreatedTask constructs an Asynq task for the roster audit.
//
// Options:
//   - MaxRetry(3): retry up to 3 times on failure
//   - Queue("low"): audit work never competes with anything urgent
//   - Timeout(30s): kill the task if handler runs longer than 30 seconds
func NewTeamCreatedTask(payload TeamCreatedPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskTeamCreated,
		data,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}
