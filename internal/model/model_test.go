package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arthurazevedods/maker-challenge-server/internal/validation"
)

func firstMessage(t *testing.T, err error) string {
	t.Helper()

	var custom validation.CustomValidationErrors
	if !errors.As(err, &custom) || len(custom) == 0 {
		t.Fatalf("expected CustomValidationErrors, got %T (%v)", err, err)
	}
	return custom[0].Message
}

func TestCreateStudentsPayload(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
		wantLen int
	}{
		{name: "valid batch", body: `[{"nome":"Ana"},{"nome":"Leo","turma":"A","_id":"x"}]`, wantLen: 2},
		{name: "empty batch", body: `[]`, wantLen: 0},
		{name: "object body", body: `{"nome":"Ana"}`, wantErr: ErrStudentsNotArray},
		{name: "missing nome", body: `[{"nome":"Ana"},{"turma":"B"}]`, wantErr: `Erro no aluno 1: {"turma":"B"}`},
		{name: "null nome", body: `[{"nome":null}]`, wantErr: "O campo nome é obrigatório"},
		{name: "element not an object", body: `[{"nome":"Ana"},"Leo"]`, wantErr: `Erro no aluno 1: "Leo"`},
		{name: "scalar nome and turma", body: `[{"nome":3,"turma":5}]`, wantLen: 1},
		{name: "object turma", body: `[{"nome":"Ana","turma":{"ano":5}}]`, wantErr: `O campo turma deve ser um texto. Erro no aluno 0: {"nome":"Ana","turma":{"ano":5}}`},
		{name: "array nome", body: `[{"nome":["Ana"]}]`, wantErr: "O campo nome deve ser um texto"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p CreateStudentsPayload
			if err := json.Unmarshal([]byte(tt.body), &p); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}

			err := p.Validate()
			if tt.wantErr != "" {
				if msg := firstMessage(t, err); !strings.Contains(msg, tt.wantErr) {
					t.Fatalf("message %q does not contain %q", msg, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if len(p.Students) != tt.wantLen {
				t.Fatalf("students = %d, want %d", len(p.Students), tt.wantLen)
			}
		})
	}
}

func TestStudentInputCoercesScalars(t *testing.T) {
	var p CreateStudentsPayload
	if err := json.Unmarshal([]byte(`[{"nome":"Ana","turma":5},{"nome":"Leo","turma":true}]`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if got := p.Students[0].ToStudent(); got.Class != "5" {
		t.Fatalf("turma = %q, want \"5\"", got.Class)
	}
	if got := p.Students[1].ToStudent(); got.Class != "true" {
		t.Fatalf("turma = %q, want \"true\"", got.Class)
	}
}

func TestCreateTeamPayload(t *testing.T) {
	id := primitive.NewObjectID()

	tests := []struct {
		name    string
		body    string
		wantErr string
		wantIDs bool
	}{
		{name: "valid", body: `{"nome":"T","membros":["` + id.Hex() + `"]}`, wantIDs: true},
		{name: "no name", body: `{"membros":[]}`, wantErr: ErrTeamNameRequired},
		{name: "numeric name", body: `{"nome":7,"membros":["` + id.Hex() + `"]}`, wantIDs: true},
		{name: "no members", body: `{"nome":"T"}`, wantErr: ErrTeamMembersRequired},
		{name: "null members", body: `{"nome":"T","membros":null}`, wantErr: ErrTeamMembersRequired},
		{name: "object members", body: `{"nome":"T","membros":{}}`, wantErr: ErrTeamMembersRequired},
		{name: "non-string member", body: `{"nome":"T","membros":[1]}`, wantIDs: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p CreateTeamPayload
			if err := json.Unmarshal([]byte(tt.body), &p); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}

			err := p.Validate()
			if tt.wantErr != "" {
				if msg := firstMessage(t, err); msg != tt.wantErr {
					t.Fatalf("message = %q, want %q", msg, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate: %v", err)
			}

			ids, ok := p.MemberIDs()
			if ok != tt.wantIDs {
				t.Fatalf("MemberIDs ok = %v, want %v", ok, tt.wantIDs)
			}
			if ok && (len(ids) != 1 || ids[0] != id) {
				t.Fatalf("ids = %v", ids)
			}
		})
	}
}

func TestChallengeDefaults(t *testing.T) {
	c := &Challenge{Name: "Robot arm", Description: "Build it"}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if c.Version != DefaultChallengeVersion {
		t.Fatalf("version = %d", c.Version)
	}

	if NewChallenge("x", "y").Version != 1 {
		t.Fatalf("NewChallenge must start at version 1")
	}

	if err := (&Challenge{Name: "x"}).Validate(); err == nil {
		t.Fatalf("description is required")
	}
	if err := (&Challenge{Name: "x", Description: "y", Version: -1}).Validate(); err == nil {
		t.Fatalf("negative version must be rejected")
	}
}

func TestStudentJSONOmitsEmptyClass(t *testing.T) {
	data, err := json.Marshal(Student{ID: primitive.NewObjectID(), Name: "Ana"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "turma") {
		t.Fatalf("empty turma should be omitted: %s", data)
	}
}
