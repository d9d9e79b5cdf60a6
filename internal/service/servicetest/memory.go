// Package servicetest provides in-memory stores for tests of the
// service and handler layers. They mimic the Mongo repositories:
// natural order, $in semantics for FindByIDs, mongo.ErrNoDocuments
// for missing documents.
package servicetest

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/arthurazevedods/maker-challenge-server/internal/model"
)

// StudentStore is an in-memory service.StudentStore.
// A non-nil Err is returned by every call.
type StudentStore struct {
	mu       sync.Mutex
	students []model.Student
	Err      error
	Calls    map[string]int
}

func NewStudentStore(students ...model.Student) *StudentStore {
	return &StudentStore{students: students, Calls: map[string]int{}}
}

func (s *StudentStore) record(op string) error {
	s.Calls[op]++
	return s.Err
}

// Len reports how many students are stored.
func (s *StudentStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.students)
}

func (s *StudentStore) InsertMany(_ context.Context, students []model.Student) ([]model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.record("InsertMany"); err != nil {
		return nil, err
	}
	s.students = append(s.students, students...)
	return students, nil
}

func (s *StudentStore) FindAll(_ context.Context) ([]model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.record("FindAll"); err != nil {
		return nil, err
	}
	return append([]model.Student{}, s.students...), nil
}

func (s *StudentStore) FindByID(_ context.Context, id primitive.ObjectID) (*model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.record("FindByID"); err != nil {
		return nil, err
	}
	for _, student := range s.students {
		if student.ID == id {
			found := student
			return &found, nil
		}
	}
	return nil, errors.Wrapf(mongo.ErrNoDocuments, "find student %s", id.Hex())
}

func (s *StudentStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.record("FindByIDs"); err != nil {
		return nil, err
	}

	wanted := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	found := []model.Student{}
	for _, student := range s.students {
		if wanted[student.ID] {
			found = append(found, student)
		}
	}
	return found, nil
}

// TeamStore is an in-memory service.TeamStore.
type TeamStore struct {
	mu    sync.Mutex
	teams []model.Team
	Err   error
	Calls map[string]int
}

func NewTeamStore(teams ...model.Team) *TeamStore {
	return &TeamStore{teams: teams, Calls: map[string]int{}}
}

func (s *TeamStore) record(op string) error {
	s.Calls[op]++
	return s.Err
}

// Len reports how many teams are stored.
func (s *TeamStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.teams)
}

func (s *TeamStore) InsertOne(_ context.Context, team *model.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.record("InsertOne"); err != nil {
		return err
	}
	s.teams = append(s.teams, *team)
	return nil
}

func (s *TeamStore) FindAll(_ context.Context) ([]model.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.record("FindAll"); err != nil {
		return nil, err
	}
	return append([]model.Team{}, s.teams...), nil
}

func (s *TeamStore) FindByID(_ context.Context, id primitive.ObjectID) (*model.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.record("FindByID"); err != nil {
		return nil, err
	}
	for _, team := range s.teams {
		if team.ID == id {
			found := team
			return &found, nil
		}
	}
	return nil, errors.Wrapf(mongo.ErrNoDocuments, "find team %s", id.Hex())
}

// TeamEvents records the teams it receives. A non-nil Err is returned
// after recording. With Hang set, a call waits for its context to end,
// the way an enqueue against an unreachable Redis does.
type TeamEvents struct {
	mu      sync.Mutex
	Created []model.Team
	Err     error
	Hang    bool
}

func (e *TeamEvents) EnqueueTeamCreated(ctx context.Context, team *model.Team) error {
	e.mu.Lock()
	e.Created = append(e.Created, *team)
	err, hang := e.Err, e.Hang
	e.mu.Unlock()

	if hang {
		<-ctx.Done()
		return ctx.Err()
	}
	return err
}
