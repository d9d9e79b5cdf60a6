// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data. Every error it returns is an *errs.HTTPError.
package service

import (
	"github.com/arthurazevedods/maker-challenge-server/internal/lib/job"
	"github.com/arthurazevedods/maker-challenge-server/internal/repository"
	"github.com/arthurazevedods/maker-challenge-server/internal/server"
)

type Services struct {
	Students *StudentService
	Teams    *TeamService
	Job      *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var events TeamEvents
	if s.Job != nil {
		events = s.Job
	}

	return &Services{
		Students: NewStudentService(repos.Students),
		Teams:    NewTeamService(repos.Teams, repos.Students, events, s.Logger),
		Job:      s.Job,
	}, nil
}
