package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for boundary handling. Geometry constraint
// violations have no kind on purpose: they are clamped before they can occur.
type Kind string

const (
	KindValidation  Kind = "VALIDATION"
	KindNotFound    Kind = "NOT_FOUND"
	KindPermission  Kind = "PERMISSION"
	KindUpstream    Kind = "UPSTREAM"
	KindPersistence Kind = "PERSISTENCE"
)

// Error carries a kind alongside a human-readable message and an optional cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Permission(format string, args ...interface{}) error {
	return &Error{Kind: KindPermission, Msg: fmt.Sprintf(format, args...)}
}

// Upstream wraps a catalog/image-proxy failure. Callers treat these as
// degraded, never fatal to resolution.
func Upstream(err error, format string, args ...interface{}) error {
	return &Error{Kind: KindUpstream, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Persistence wraps a definition or cart write failure. Surfaced to the
// caller; in-memory state is kept so authoring work is not lost.
func Persistence(err error, format string, args ...interface{}) error {
	return &Error{Kind: KindPersistence, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf reports the kind of err, or "" when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err (or anything it wraps) has the given kind.
func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }

// HTTPStatus maps an error kind to the response code handlers should use.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindPermission:
		return http.StatusForbidden
	case KindUpstream:
		return http.StatusBadGateway
	case KindPersistence:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
