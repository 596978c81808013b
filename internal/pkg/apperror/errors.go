// FILE: internal/pkg/apperror/errors.go
package apperror

import (
	"errors"
	"fmt"
)

// Error kinds returned by the matching and gamification services.
// Callers compare with errors.Is; the HTTP layer maps each kind to a status code.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInvalidTransition = errors.New("invalid session transition")
	ErrNotAuthorized     = errors.New("not authorized")
	ErrSelfRating        = errors.New("you cannot rate yourself")
	ErrDuplicateRating   = errors.New("you have already rated this user")
	ErrConflict          = errors.New("conflict")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrUnavailable       = errors.New("dependency unavailable")
)

// Error carries a user-facing message on top of one of the kinds above.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) error {
	return newError(ErrNotFound, format, args...)
}

func InvalidArgument(format string, args ...interface{}) error {
	return newError(ErrInvalidArgument, format, args...)
}

func InvalidTransition(format string, args ...interface{}) error {
	return newError(ErrInvalidTransition, format, args...)
}

func NotAuthorized(format string, args ...interface{}) error {
	return newError(ErrNotAuthorized, format, args...)
}

func Conflict(format string, args ...interface{}) error {
	return newError(ErrConflict, format, args...)
}

func Unauthenticated(format string, args ...interface{}) error {
	return newError(ErrUnauthenticated, format, args...)
}

func Unavailable(format string, args ...interface{}) error {
	return newError(ErrUnavailable, format, args...)
}

// Message returns the user-facing text of err, falling back to its kind.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Error()
	}
	return err.Error()
}
