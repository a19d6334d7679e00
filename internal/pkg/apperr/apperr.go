// Package apperr carries the (kind, message, status) triple that every core
// failure exposes to the transport layer.
package apperr

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidation         Kind = "VALIDATION_ERROR"
	KindInvalidService     Kind = "INVALID_SERVICE"
	KindInvalidCredentials Kind = "INVALID_CREDENTIALS"
	KindInvalidToken       Kind = "INVALID_TOKEN"
	KindTokenExpired       Kind = "TOKEN_EXPIRED"
	KindDuplicateService   Kind = "DUPLICATE_SERVICE"
	KindAlreadySubscribed  Kind = "ALREADY_SUBSCRIBED"
	KindNotSubscribed      Kind = "NOT_SUBSCRIBED"
	KindNotFound           Kind = "NOT_FOUND"
	KindStorage            Kind = "STORAGE_ERROR"
)

const storageMessage = "Internal storage failure"

// Error is a classified failure. Sentinels declared with New are compared by
// identity, so errors.Is works across wrapping.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	cause   error
}

func New(kind Kind, message string, status int) *Error {
	return &Error{Kind: kind, Message: message, Status: status}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.cause.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Validation reports malformed or missing input.
func Validation(message string) *Error {
	return New(KindValidation, message, http.StatusBadRequest)
}

// Storage wraps a persistence failure. The cause stays reachable through
// errors.Unwrap but is never part of Message.
func Storage(cause error) *Error {
	return &Error{Kind: KindStorage, Message: storageMessage, Status: http.StatusInternalServerError, cause: cause}
}

// From classifies any error. Unclassified errors are treated as storage failures.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Storage(err)
}

// IsKind reports whether err classifies as kind.
func IsKind(err error, kind Kind) bool {
	e := From(err)
	return e != nil && e.Kind == kind
}
