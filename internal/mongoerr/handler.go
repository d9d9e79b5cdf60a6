package mongoerr

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/arthurazevedods/maker-challenge-server/internal/errs"
)

// Entity names a document kind in error codes and client messages.
//
//   - Name is the snake_case kind used for codes ("student" -> STUDENT_ALREADY_EXISTS)
//   - NotFound and Duplicate are the client messages of a 404 and a duplicate key;
//     when empty they are built from Name
type Entity struct {
	Name      string
	NotFound  string
	Duplicate string
}

// generateErrorCode creates consistent application error codes.
//
// Output format:
//
//	<ENTITY>_<ACTION>
//
// Example:
//
//	student + DuplicateKey => STUDENT_ALREADY_EXISTS
func generateErrorCode(entity string, code Code) string {
	if entity == "" {
		entity = "record"
	}

	action := "ERROR"
	switch code {
	case NoDocuments:
		action = "NOT_FOUND"
	case DuplicateKey:
		action = "ALREADY_EXISTS"
	}

	return fmt.Sprintf("%s_%s", strings.ToUpper(strings.ReplaceAll(entity, " ", "_")), action)
}

// humanizeText converts snake_case into Title Case.
//
// Example:
//
//	"team_member" -> "Team Member"
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.BrazilianPortuguese).String(strings.ReplaceAll(text, "_", " "))
}

// HandleError converts a driver error into an application-level error.
//
//   - entity names the document kind for messages and codes
//   - message describes the failed operation and is used for 5xx responses
//
// Output:
//   - *errs.HTTPError input: returned unchanged
//   - mongo.ErrNoDocuments: 404 with entity.NotFound
//   - duplicate key: 400 <ENTITY>_ALREADY_EXISTS with entity.Duplicate
//   - timeout/network: 500 DATABASE_UNAVAILABLE with the driver message as details
//   - anything else: 500 with the driver message as details
func HandleError(err error, entity Entity, message string) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	entityName := humanizeText(entity.Name)
	if entityName == "" {
		entityName = "Registro"
	}

	switch code := ErrCode(err); code {
	case NoDocuments:
		msg := entity.NotFound
		if msg == "" {
			msg = fmt.Sprintf("%s não encontrado", entityName)
		}
		return errs.NewNotFoundError(msg, nil)

	case DuplicateKey:
		errorCode := generateErrorCode(entity.Name, code)
		msg := entity.Duplicate
		if msg == "" {
			msg = fmt.Sprintf("%s já existe com este identificador", entityName)
		}
		return errs.NewBadRequestError(msg, &errorCode, nil)

	case Unavailable:
		httpErr = errs.NewInternalServerError(message, err.Error())
		httpErr.Code = "DATABASE_UNAVAILABLE"
		return httpErr
	}

	return errs.NewInternalServerError(message, err.Error())
}
