package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/lib/pq"
)

// Kind classifies a failure for envelope/status mapping. Every error that
// reaches a handler boundary is one of these.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindConflict          Kind = "conflict"
	KindInvalidAdjustment Kind = "invalid_adjustment"
	KindScopeRequired     Kind = "scope_required"
	KindStore             Kind = "store"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func InvalidAdjustment(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidAdjustment, Message: fmt.Sprintf(format, args...)}
}

func ScopeRequired(format string, args ...any) *Error {
	return &Error{Kind: KindScopeRequired, Message: fmt.Sprintf(format, args...)}
}

// Store wraps a persistence failure, keeping the original message intact.
func Store(err error) *Error {
	return &Error{Kind: KindStore, Message: err.Error(), Err: err}
}

// FromDB maps PostgreSQL error codes onto the taxonomy: 23505 (unique
// violation) and 23503 (foreign key violation) become Conflict, anything
// else is surfaced as a store failure.
func FromDB(err error) *Error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return &Error{Kind: KindConflict, Message: "record already exists: " + pqErr.Detail, Err: err}
		case "23503":
			return &Error{Kind: KindConflict, Message: "value is referenced by other resources: " + pqErr.Detail, Err: err}
		}
	}
	return Store(err)
}

// KindOf unwraps err and reports its Kind; unknown errors count as store
// failures.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStore
}

// HTTPStatus maps an error onto the response status used alongside the
// uniform envelope.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindInvalidAdjustment, KindScopeRequired:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
