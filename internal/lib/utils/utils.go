// Package utils contains small helper functions used across the project.
//
// These are usually generic helpers that don't belong to a specific domain.
package utils

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

// ErrNotScalar is returned by ScalarString for JSON objects and arrays.
var ErrNotScalar = errors.New("esperado texto, número ou booleano")

// IsJSONArray reports whether data holds a JSON array, ignoring
// surrounding whitespace. It looks at the first byte only; malformed
// arrays are left for the decoder to reject.
func IsJSONArray(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// CompactJSON returns raw JSON without insignificant whitespace,
// or the input unchanged if it cannot be compacted.
//
// Used to quote client input back in error messages.
func CompactJSON(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// ScalarString reads a JSON scalar as text. Strings are unquoted, numbers
// are rendered in their shortest decimal form ("5.0" -> "5"), booleans as
// "true"/"false", and null or an absent value as "".
func ScalarString(raw []byte) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", errors.Wrap(err, "decode string")
		}
		return s, nil

	case '{', '[':
		return "", ErrNotScalar

	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return "", errors.Wrap(err, "decode boolean")
		}
		return strconv.FormatBool(b), nil
	}

	f, err := strconv.ParseFloat(string(trimmed), 64)
	if err != nil {
		return "", errors.Wrapf(err, "decode number %s", trimmed)
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}
