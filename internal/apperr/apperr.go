// Package apperr defines the error taxonomy shared by services and
// controllers. Services return one of these kinds; the HTTP layer maps kinds
// to status codes in one place and never inspects error strings.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	// KindValidation is malformed or missing input. The message is
	// field-level and shown to the user verbatim.
	KindValidation Kind = iota
	// KindNotFound covers absent ids and failed ownership checks alike, so
	// existence of another employer's resources is never leaked.
	KindNotFound
	// KindForbidden is the one case where ownership failure is reported
	// distinctly: an employer fetching an attempt whose assessment belongs
	// to someone else.
	KindForbidden
	// KindStateConflict is a mutation against a terminal attempt.
	KindStateConflict
	// KindUnexpected is everything else; the client sees a generic message.
	KindUnexpected
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

func (e *Error) Unwrap() error { return e.Err }

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func StateConflict(format string, args ...any) *Error {
	return &Error{Kind: KindStateConflict, Message: fmt.Sprintf(format, args...)}
}

func Unexpected(msg string, err error) *Error {
	return &Error{Kind: KindUnexpected, Message: msg, Err: err}
}

// KindOf extracts the taxonomy kind, defaulting to KindUnexpected for plain
// errors coming out of gorm or the runtime.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnexpected
}

// HTTPStatus maps a taxonomy kind onto its response code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindStateConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// MessageOf returns the user-facing message for err. Unexpected errors get a
// generic retry message; the underlying cause stays in the server log.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Kind != KindUnexpected {
		return ae.Message
	}
	return "Something went wrong, please try again"
}
