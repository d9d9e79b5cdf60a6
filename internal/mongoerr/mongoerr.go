// Package mongoerr specifically handles database driver errors.
//
// It classifies errors returned by the MongoDB driver and
// converts them into application errors (e.g., converting
// a missing document into a "Not Found" error and a lost
// connection into a 500 carrying the driver message)
package mongoerr

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

// Code is the category of a driver error.
type Code int

const (
	// Other is any error we have no specific mapping for.
	Other Code = iota
	// NoDocuments means a single-document lookup matched nothing.
	NoDocuments
	// DuplicateKey means a unique index rejected a write.
	DuplicateKey
	// Unavailable covers timeouts, cancellations and network failures.
	Unavailable
)

// String returns the code name used in log fields.
func (c Code) String() string {
	switch c {
	case NoDocuments:
		return "no_documents"
	case DuplicateKey:
		return "duplicate_key"
	case Unavailable:
		return "unavailable"
	default:
		return "other"
	}
}

// ErrCode reports the Code for a given error. It walks the wrap chain.
func ErrCode(err error) Code {
	switch {
	case err == nil:
		return Other
	case errors.Is(err, mongo.ErrNoDocuments):
		return NoDocuments
	case mongo.IsDuplicateKeyError(err):
		return DuplicateKey
	case mongo.IsTimeout(err), mongo.IsNetworkError(err),
		errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return Unavailable
	default:
		return Other
	}
}
