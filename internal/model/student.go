package model

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arthurazevedods/maker-challenge-server/internal/lib/utils"
	"github.com/arthurazevedods/maker-challenge-server/internal/validation"
)

// Student is a learner stored in the alunos collection.
type Student struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name  string             `bson:"nome" json:"nome"`
	Class string             `bson:"turma,omitempty" json:"turma,omitempty"`
}

// StudentInput is one element of a batch creation payload.
// Unknown fields, including any client supplied _id, are dropped.
type StudentInput struct {
	Name  Text `json:"nome" validate:"required"`
	Class Text `json:"turma"`
}

// ToStudent builds the document to insert, without an id.
func (in StudentInput) ToStudent() Student {
	return Student{Name: string(in.Name), Class: string(in.Class)}
}

// Validation messages for POST /api/alunos. The element messages take
// the element index and its raw JSON; ErrStudentFieldNotText takes the
// field name first.
const (
	ErrStudentsNotArray    = "O corpo da requisição deve ser um array de alunos."
	ErrStudentNameRequired = "O campo nome é obrigatório para todos os alunos. Erro no aluno %d: %s"
	ErrStudentFieldNotText = "O campo %s deve ser um texto. Erro no aluno %d: %s"
)

// CreateStudentsPayload is the body of POST /api/alunos: a JSON array of students.
//
// The raw elements are kept so a validation message can quote the
// offending element exactly as the client sent it.
type CreateStudentsPayload struct {
	Students []StudentInput

	raw []json.RawMessage
	// notText[i] names the field of element i holding an object or array.
	notText []string
}

// UnmarshalJSON accepts only a JSON array. Anything else leaves Students nil,
// which Validate reports as a shape error.
func (p *CreateStudentsPayload) UnmarshalJSON(data []byte) error {
	if !utils.IsJSONArray(data) {
		p.Students, p.raw, p.notText = nil, nil, nil
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	students := make([]StudentInput, len(raw))
	notText := make([]string, len(raw))
	for i, element := range raw {
		students[i], notText[i] = decodeStudent(element)
	}

	p.Students, p.raw, p.notText = students, raw, notText
	return nil
}

// decodeStudent reads one batch element. An element that is not an
// object yields the zero input, which the nome check reports with its
// index. field names the first member whose value is not a scalar.
func decodeStudent(element json.RawMessage) (input StudentInput, field string) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(element, &members); err != nil {
		return StudentInput{}, ""
	}

	for _, m := range []struct {
		key string
		dst *Text
	}{
		{key: "nome", dst: &input.Name},
		{key: "turma", dst: &input.Class},
	} {
		value, ok := members[m.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, m.dst); err != nil {
			return StudentInput{}, m.key
		}
	}

	return input, ""
}

// Validate runs the shape checks for a batch: the body is an array and
// every element has a non-empty nome and only scalar nome/turma values.
// It stops at the first offending element.
func (p *CreateStudentsPayload) Validate() error {
	if p.Students == nil {
		return validation.CustomValidationErrors{{Field: "body", Message: ErrStudentsNotArray}}
	}

	for i, student := range p.Students {
		element := "{}"
		if i < len(p.raw) {
			element = utils.CompactJSON(p.raw[i])
		}

		if i < len(p.notText) && p.notText[i] != "" {
			field := p.notText[i]
			return validation.CustomValidationErrors{{
				Field:   fmt.Sprintf("[%d].%s", i, field),
				Message: fmt.Sprintf(ErrStudentFieldNotText, field, i, element),
			}}
		}

		if err := validate.Struct(student); err != nil {
			return validation.CustomValidationErrors{{
				Field:   fmt.Sprintf("[%d].nome", i),
				Message: fmt.Sprintf(ErrStudentNameRequired, i, element),
			}}
		}
	}

	return nil
}
