package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// RosterEventType is the New Relic custom event recorded per created team.
const RosterEventType = "RosterTeamCreated"

// handleTeamCreatedTask processes the roster audit task.
//
// Steps:
//   - Parse JSON payload from the Asynq task
//   - Write the audit log line
//   - Record a custom event when New Relic is enabled
func (j *JobService) handleTeamCreatedTask(ctx context.Context, t *asynq.Task) error {
	var p TeamCreatedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// Retrying cannot fix a malformed payload.
		return fmt.Errorf("failed to unmarshal team created payload: %v: %w", err, asynq.SkipRetry)
	}

	j.logger.Info().
		Str("type", TaskTeamCreated).
		Str("team_id", p.TeamID).
		Str("team_name", p.TeamName).
		Int("member_count", len(p.MemberIDs)).
		Time("created_at", p.CreatedAt).
		Msg("team roster recorded")

	if app := j.loggerService.GetApplication(); app != nil {
		app.RecordCustomEvent(RosterEventType, map[string]interface{}{
			"teamId":      p.TeamID,
			"teamName":    p.TeamName,
			"memberCount": len(p.MemberIDs),
		})
	}

	return nil
}
