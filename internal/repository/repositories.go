// Package repository handles all interactions with the database.
//
// It contains the MongoDB queries used to fetch or persist documents,
// abstracting driver details away from the service layer.
package repository

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/arthurazevedods/maker-challenge-server/internal/model"
	"github.com/arthurazevedods/maker-challenge-server/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Students *StudentRepository
	Teams    *TeamRepository
}

// NewRepositories constructs the repository container over the shared client on s.DB.
func NewRepositories(s *server.Server) *Repositories {
	slow := s.Config.Observability.Logging.SlowQueryThreshold

	return &Repositories{
		Students: NewStudentRepository(s.DB.Collection(model.StudentCollection), s.Logger, slow),
		Teams:    NewTeamRepository(s.DB.Collection(model.TeamCollection), s.Logger, slow),
	}
}

// queryTimer logs store calls slower than the configured threshold.
type queryTimer struct {
	logger     *zerolog.Logger
	collection string
	threshold  time.Duration
}

// observe is deferred with the start time of a store call.
func (q queryTimer) observe(operation string, start time.Time) {
	elapsed := time.Since(start)
	if q.threshold <= 0 || elapsed < q.threshold {
		return
	}

	q.logger.Warn().
		Str("collection", q.collection).
		Str("operation", operation).
		Dur("duration", elapsed).
		Dur("threshold", q.threshold).
		Msg("slow query")
}
