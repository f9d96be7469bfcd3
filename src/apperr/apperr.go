// Package apperr holds the error kinds handlers translate into HTTP statuses.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
)

// Validation wraps ErrValidation with a message safe to show the caller.
func Validation(format string, args ...any) error {
	return &publicError{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

// NotFound wraps ErrNotFound with the name of the missing thing.
func NotFound(what string) error {
	return &publicError{kind: ErrNotFound, msg: what + " not found"}
}

func Unauthorized(msg string) error {
	return &publicError{kind: ErrUnauthorized, msg: msg}
}

func Forbidden(msg string) error {
	return &publicError{kind: ErrForbidden, msg: msg}
}

// Conflict wraps ErrConflict with a message safe to show the caller.
func Conflict(msg string) error {
	return &publicError{kind: ErrConflict, msg: msg}
}

type publicError struct {
	kind error
	msg  string
}

func (e *publicError) Error() string { return e.msg }
func (e *publicError) Unwrap() error { return e.kind }

// Status maps err onto an HTTP status and the message to return. Anything
// that is not one of the kinds above is a 500 with a generic message.
func Status(err error) (int, string) {
	var pe *publicError
	msg := ""
	if errors.As(err, &pe) {
		msg = pe.msg
	}

	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, orDefault(msg, "invalid request")
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, orDefault(msg, "unauthorized")
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, orDefault(msg, "forbidden")
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, orDefault(msg, "not found")
	case errors.Is(err, ErrConflict):
		return http.StatusConflict, orDefault(msg, "already exists")
	}
	return http.StatusInternalServerError, "internal error"
}

func orDefault(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
