package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind is the machine-readable class of an error returned to API callers.
type Kind string

const (
	KindValidation    Kind = "validation_error"
	KindReferential   Kind = "referential_error"
	KindNotFound      Kind = "not_found"
	KindConflict      Kind = "conflict"
	KindConfiguration Kind = "configuration_error"
	KindPersistence   Kind = "persistence_error"
	KindUnauthorized  Kind = "unauthorized"
	KindForbidden     Kind = "forbidden"
)

// Error carries a kind, a caller-safe message and the offending fields.
// Err holds the internal cause and is never rendered.
type Error struct {
	Kind    Kind
	Message string
	Fields  []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports malformed or missing input.
func Validation(msg string, fields ...string) error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

// MissingFields builds the validation error for absent required fields.
func MissingFields(fields ...string) error {
	return &Error{
		Kind:    KindValidation,
		Message: "Missing required fields: " + strings.Join(fields, ", "),
		Fields:  fields,
	}
}

// Referential reports a foreign key that does not resolve.
func Referential(field string, id any) error {
	return &Error{
		Kind:    KindReferential,
		Message: fmt.Sprintf("%s %v does not exist", field, id),
		Fields:  []string{field},
	}
}

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Configuration reports missing reference data. It is an operator fault.
func Configuration(msg string) error {
	return &Error{Kind: KindConfiguration, Message: msg}
}

// Persistence wraps a storage failure behind a generic message.
func Persistence(op string, err error) error {
	return &Error{
		Kind:    KindPersistence,
		Message: "Failed to " + op,
		Err:     err,
	}
}

func Unauthorized(msg string) error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func Forbidden(msg string) error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// KindOf returns the kind of err, or KindPersistence for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindPersistence
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// HTTPStatus maps a kind to its response status.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindReferential:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
