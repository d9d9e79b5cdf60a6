package validation

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/arthurazevedods/maker-challenge-server/internal/errs"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
// - Define a request struct with validator tags (`validate:"required"`)
// - Implement Validate() error that runs validator.Struct(req)
// - Return validator.ValidationErrors (or CustomValidationErrors for custom cases)
type Validatable interface {
	Validate() error
}

// ValidationFailed is the summary message of tag-based validation errors.
const ValidationFailed = "Falha na validação"

// CustomValidationError represents a single validation issue for a specific field.
// This is used for validation errors that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	messages := make([]string, 0, len(c))
	for _, err := range c {
		messages = append(messages, err.Message)
	}
	return ValidationFailed + ": " + strings.Join(messages, "; ")
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
// 1) path params are bound through echo's DefaultBinder (`param:"id"` tags).
// 2) a non-empty body is decoded as JSON regardless of Content-Type.
// 3) payload.Validate() applies the shape rules.
//
// Any failure is returned as a 400 *errs.HTTPError; nothing here touches the store.
//
// NOTE: payload must be a pointer so binding can mutate it.
func BindAndValidate(c echo.Context, payload Validatable) error {
	binder := &echo.DefaultBinder{}
	if err := binder.BindPathParams(c, payload); err != nil {
		return errs.NewBadRequestError(bindErrorMessage(err), nil, nil)
	}

	if c.Request().ContentLength != 0 {
		err := c.Echo().JSONSerializer.Deserialize(c, payload)
		if err != nil && !errors.Is(err, io.EOF) {
			return errs.NewBadRequestError(bindErrorMessage(err), nil, nil)
		}
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, nil, fieldErrors)
	}

	return nil
}

// bindErrorMessage extracts the client-facing text of a bind error.
// Echo wraps decoder errors in *echo.HTTPError with a string message.
func bindErrorMessage(err error) string {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if msg, ok := echoErr.Message.(string); ok {
			return msg
		}
	}
	return "Corpo da requisição inválido: " + err.Error()
}

// validateStruct calls v.Validate() and extracts field errors if validation fails.
func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

// extractValidationError turns a Validate() error into a summary message and field errors.
//
// Custom errors carry their own message, so the first one becomes the summary.
// Tag-based errors get the ValidationFailed summary.
func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, err := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: err.Field,
				Error: err.Message,
			})
		}

		if len(customValidationErrors) == 0 {
			return ValidationFailed, []errs.FieldError{}
		}
		return customValidationErrors[0].Message, fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error type at all: still a 400, with its own text.
		return err.Error(), []errs.FieldError{}
	}

	for _, err := range validationErrors {
		field := strings.ToLower(err.Field())
		var msg string

		switch err.Tag() {
		case "required":
			msg = "é obrigatório"

		case "min":
			// min on strings is a length, on numbers a value.
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("deve ter pelo menos %s caracteres", err.Param())
			} else {
				msg = fmt.Sprintf("deve ser no mínimo %s", err.Param())
			}

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return ValidationFailed, fieldErrors
}
