package usecase

import (
	"errors"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("resource already exists")
	ErrInternal              = errors.New("internal error")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// internalError wraps a persistence or transaction failure and marks it as
// ErrInternal. The cause chain is kept for logs.
func internalError(err error, msg string) error {
	return crerr.Mark(crerr.Wrap(err, msg), ErrInternal)
}

// IsKind reports whether err carries the given taxonomy sentinel, either
// through wrapping or through a mark.
func IsKind(err, kind error) bool {
	return crerr.Is(err, kind)
}
