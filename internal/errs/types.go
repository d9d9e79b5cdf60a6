package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "[1].nome", "error": "is required" }
type FieldError struct {
	// Field is the field name/key the error relates to.
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the main custom error type for API responses.
//
// It implements the `error` interface via Error() and is serialized
// directly to JSON. Every error response of the API has this shape:
//
//	{ "error": "...", "details": "...", "code": "BAD_REQUEST", "errors": [...] }
//
// Fields:
//   - Message: human-friendly message, serialized as "error".
//   - Details: underlying cause (driver error text) for 5xx responses.
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST").
//   - Status: HTTP status code, carried but not serialized.
//   - Errors: list of per-field errors (validation).
type HTTPError struct {
	Message string       `json:"error"`
	Details string       `json:"details,omitempty"`
	Code    string       `json:"code"`
	Status  int          `json:"-"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// Is returns true if target is also a *HTTPError.
//
// It does NOT compare Code/Status; it only checks the type.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
//
// Used to create stable machine-readable error codes from HTTP status text.
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
