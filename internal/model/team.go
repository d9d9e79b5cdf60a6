package model

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arthurazevedods/maker-challenge-server/internal/validation"
)

// Team is a named group of students stored in the equipes collection.
// Members holds Student ids in the order the client sent them.
type Team struct {
	ID      primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name    string               `bson:"nome" json:"nome"`
	Members []primitive.ObjectID `bson:"membros" json:"membros"`
}

// TeamWithMembers is a Team whose member ids were resolved to Student documents.
type TeamWithMembers struct {
	ID      primitive.ObjectID `json:"_id"`
	Name    string             `json:"nome"`
	Members []Student          `json:"membros"`
}

// Validation messages for POST /api/equipes.
const (
	ErrTeamNameRequired    = "O campo nome da equipe é obrigatório."
	ErrTeamMembersRequired = "A equipe deve ter pelo menos um membro."
	ErrInvalidStudentIDs   = "Um ou mais IDs de alunos são inválidos."
)

// CreateTeamPayload is the body of POST /api/equipes.
//
// Members stays raw so that a wrongly typed membros never hides a
// missing nome: name is always checked first.
type CreateTeamPayload struct {
	Name    Text            `json:"nome"`
	Members json.RawMessage `json:"membros"`
}

// Validate runs the shape checks in order: nome, then membros being a
// non-empty array. Member id format and existence are checked by the service.
func (p *CreateTeamPayload) Validate() error {
	if p.Name == "" {
		return validation.CustomValidationErrors{{Field: "nome", Message: ErrTeamNameRequired}}
	}

	members, err := p.MemberValues()
	if err != nil || len(members) == 0 {
		return validation.CustomValidationErrors{{Field: "membros", Message: ErrTeamMembersRequired}}
	}

	return nil
}

// MemberValues splits membros into its raw elements.
func (p *CreateTeamPayload) MemberValues() ([]json.RawMessage, error) {
	var members []json.RawMessage
	if err := json.Unmarshal(p.Members, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// MemberIDs parses every member as an ObjectID hex string.
// ok is false when any element is not a string or not a valid id.
func (p *CreateTeamPayload) MemberIDs() (ids []primitive.ObjectID, ok bool) {
	members, err := p.MemberValues()
	if err != nil {
		return nil, false
	}

	ids = make([]primitive.ObjectID, 0, len(members))
	for _, member := range members {
		var hex string
		if err := json.Unmarshal(member, &hex); err != nil {
			return nil, false
		}

		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return nil, false
		}
		ids = append(ids, id)
	}

	return ids, true
}
