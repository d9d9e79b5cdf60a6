package service

import (
	"context"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arthurazevedods/maker-challenge-server/internal/errs"
	"github.com/arthurazevedods/maker-challenge-server/internal/model"
	"github.com/arthurazevedods/maker-challenge-server/internal/mongoerr"
)

var teamEntity = mongoerr.Entity{
	Name:      "team",
	NotFound:  "Equipe não encontrada",
	Duplicate: "Já existe uma equipe com este identificador",
}

// invalidStudentIDsCode is the machine code of the member id rejection.
var invalidStudentIDsCode = "INVALID_STUDENT_IDS"

// EnqueueTimeout bounds the roster task enqueue made after a team is stored.
const EnqueueTimeout = 2 * time.Second

type TeamService struct {
	teams          TeamStore
	students       StudentStore
	events         TeamEvents
	logger         *zerolog.Logger
	enqueueTimeout time.Duration
}

// NewTeamService wires the team service. events may be nil.
func NewTeamService(teams TeamStore, students StudentStore, events TeamEvents, logger *zerolog.Logger) *TeamService {
	return &TeamService{
		teams:          teams,
		students:       students,
		events:         events,
		logger:         logger,
		enqueueTimeout: EnqueueTimeout,
	}
}

func (s *TeamService) ListTeams(ctx context.Context) ([]model.TeamWithMembers, error) {
	teams, err := s.teams.FindAll(ctx)
	if err != nil {
		return nil, mongoerr.HandleError(err, teamEntity, "Erro ao buscar as equipes")
	}

	expanded, err := s.expandMembers(ctx, teams)
	if err != nil {
		return nil, mongoerr.HandleError(err, studentEntity, "Erro ao buscar as equipes")
	}
	return expanded, nil
}

// GetTeam looks a team up by its hex id and expands its members.
func (s *TeamService) GetTeam(ctx context.Context, id string) (*model.TeamWithMembers, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.NewNotFoundError(teamEntity.NotFound, nil)
	}

	team, err := s.teams.FindByID(ctx, objectID)
	if err != nil {
		return nil, mongoerr.HandleError(err, teamEntity, "Erro ao buscar a equipe")
	}

	expanded, err := s.expandMembers(ctx, []model.Team{*team})
	if err != nil {
		return nil, mongoerr.HandleError(err, studentEntity, "Erro ao buscar a equipe")
	}
	return &expanded[0], nil
}

// CreateTeam runs the referential checks on an already shape-validated
// payload and persists the team. The insert is the last store call.
//
// The member count must match exactly: an unknown id and a repeated id
// both leave fewer matches than requested ids.
func (s *TeamService) CreateTeam(ctx context.Context, payload *model.CreateTeamPayload) (*model.Team, error) {
	memberIDs, ok := payload.MemberIDs()
	if !ok {
		return nil, errs.NewBadRequestError(model.ErrInvalidStudentIDs, &invalidStudentIDsCode, nil)
	}

	found, err := s.students.FindByIDs(ctx, memberIDs)
	if err != nil {
		return nil, mongoerr.HandleError(err, studentEntity, "Erro ao criar a equipe")
	}
	if len(found) != len(memberIDs) {
		return nil, errs.NewBadRequestError(model.ErrInvalidStudentIDs, &invalidStudentIDsCode, nil)
	}

	team := &model.Team{
		ID:      primitive.NewObjectID(),
		Name:    string(payload.Name),
		Members: memberIDs,
	}

	if err := s.teams.InsertOne(ctx, team); err != nil {
		return nil, mongoerr.HandleError(err, teamEntity, "Erro ao criar a equipe")
	}

	s.publishCreated(ctx, team)

	return team, nil
}

// publishCreated is best effort; the team is already stored.
// An unreachable queue delays the response by at most enqueueTimeout.
func (s *TeamService) publishCreated(ctx context.Context, team *model.Team) {
	if s.events == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.enqueueTimeout)
	defer cancel()

	if err := s.events.EnqueueTeamCreated(ctx, team); err != nil {
		s.loggerFor(ctx).Warn().
			Err(err).
			Str("team_id", team.ID.Hex()).
			Msg("failed to enqueue team roster task")
	}
}

// loggerFor returns the request logger stored in ctx, falling back to
// the service logger outside a request.
func (s *TeamService) loggerFor(ctx context.Context) *zerolog.Logger {
	if logger := zerolog.Ctx(ctx); logger.GetLevel() != zerolog.Disabled {
		return logger
	}
	return s.logger
}

// expandMembers resolves the member ids of teams into Student documents
// with a single FindByIDs over the union of ids. Members keep the stored
// order; ids that no longer resolve are skipped.
func (s *TeamService) expandMembers(ctx context.Context, teams []model.Team) ([]model.TeamWithMembers, error) {
	defer newrelic.FromContext(ctx).StartSegment("TeamService/expandMembers").End()

	seen := make(map[primitive.ObjectID]struct{})
	ids := make([]primitive.ObjectID, 0)
	for _, team := range teams {
		for _, id := range team.Members {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	byID := make(map[primitive.ObjectID]model.Student, len(ids))
	if len(ids) > 0 {
		students, err := s.students.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, student := range students {
			byID[student.ID] = student
		}
	}

	expanded := make([]model.TeamWithMembers, len(teams))
	for i, team := range teams {
		members := make([]model.Student, 0, len(team.Members))
		for _, id := range team.Members {
			if student, ok := byID[id]; ok {
				members = append(members, student)
			}
		}

		expanded[i] = model.TeamWithMembers{
			ID:      team.ID,
			Name:    team.Name,
			Members: members,
		}
	}

	return expanded, nil
}
