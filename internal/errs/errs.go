// Package errs defines the error taxonomy surfaced to API clients.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the client.
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// StatusCode maps the kind to its HTTP status.
func (k Kind) StatusCode() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Sentinel values, one per kind. errors.Is(err, ErrNotFound) matches any *Error of that kind.
var (
	ErrInternal     = &Error{Kind: KindInternal, Message: "internal server error"}
	ErrBadRequest   = &Error{Kind: KindBadRequest, Message: "malformed request"}
	ErrUnauthorized = &Error{Kind: KindUnauthorized, Message: "unauthorized"}
	ErrForbidden    = &Error{Kind: KindForbidden, Message: "operation not allowed"}
	ErrNotFound     = &Error{Kind: KindNotFound, Message: "not found"}
	ErrConflict     = &Error{Kind: KindConflict, Message: "resource conflict"}
)

// Error is a client-facing error. Message and Field are safe to return to the caller;
// Cause is for server-side logs only.
type Error struct {
	Kind    Kind
	Message string
	Field   string // field that failed validation, if any
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches errors of the same kind so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// StatusCode returns the HTTP status for the error.
func (e *Error) StatusCode() int { return e.Kind.StatusCode() }

func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// MissingField reports a required field that was absent or blank.
func MissingField(field string) *Error {
	return &Error{Kind: KindBadRequest, Message: field + " is required", Field: field}
}

// InvalidField reports a field that is present but unacceptable.
func InvalidField(field, reason string) *Error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf("invalid %s: %s", field, reason), Field: field}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NotFound reports a missing entity, e.g. NotFound("project").
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Internal wraps an unexpected failure. The cause is never shown to clients.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: ErrInternal.Message, Cause: cause}
}

// From returns err as an *Error, classifying anything untyped as internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// KindOf returns the kind of err, KindInternal for untyped errors.
func KindOf(err error) Kind {
	return From(err).Kind
}

func IsBadRequest(err error) bool   { return errors.Is(err, ErrBadRequest) }
func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }
func IsForbidden(err error) bool    { return errors.Is(err, ErrForbidden) }
func IsNotFound(err error) bool     { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool     { return errors.Is(err, ErrConflict) }
