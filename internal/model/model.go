// Package model declares the documents stored in MongoDB and the
// payloads accepted by the API.
//
// Go identifiers are English; JSON and BSON keys keep the names the
// API has always exposed (nome, turma, membros).
package model

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Collection names.
const (
	StudentCollection   = "alunos"
	TeamCollection      = "equipes"
	ChallengeCollection = "desafios"
)

// validate is shared by every payload; validator caches struct metadata,
// so one instance is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report JSON names ("nome") instead of Go names ("Name") in field errors.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}
