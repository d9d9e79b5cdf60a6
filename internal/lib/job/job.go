// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - You enqueue tasks (producer) using asynq.Client.
//   - A server runs workers that process those tasks (consumer) using asynq.Server.
//
// Jobs only exist when a Redis address is configured.
package job

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/arthurazevedods/maker-challenge-server/internal/config"
	loggerPkg "github.com/arthurazevedods/maker-challenge-server/internal/logger"
	"github.com/arthurazevedods/maker-challenge-server/internal/model"
)

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	// Client is used to enqueue tasks into Redis.
	Client *asynq.Client

	server        *asynq.Server
	logger        *zerolog.Logger
	loggerService *loggerPkg.LoggerService
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// Queue weights give "critical" tasks most of the worker share; the
// roster audit runs on "low".
func NewJobService(logger *zerolog.Logger, cfg *config.Config, loggerService *loggerPkg.LoggerService) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger:   newAsynqLogger(logger),
			LogLevel: asynq.WarnLevel,
		},
	)

	return &JobService{
		Client:        client,
		server:        server,
		logger:        logger,
		loggerService: loggerService,
	}
}

// Start registers the task handlers and starts the worker server.
// asynq.Server.Start returns once the workers are running.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTeamCreated, j.handleTeamCreatedTask)

	j.logger.Info().Msg("Starting background job server")

	return j.server.Start(mux)
}

// EnqueueTeamCreated schedules the roster audit for a freshly inserted team.
func (j *JobService) EnqueueTeamCreated(ctx context.Context, team *model.Team) error {
	task, err := NewTeamCreatedTask(NewTeamCreatedPayload(team, time.Now()))
	if err != nil {
		return err
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Str("team_id", team.ID.Hex()).
		Msg("enqueued team roster task")

	return nil
}

// Stop gracefully stops the job server and closes client resources.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("failed to close job client")
	}
}
