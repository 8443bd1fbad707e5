// Package apperr defines the error kinds raised by services and the HTTP
// status each kind maps to at the handler boundary.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an application error. The kind is chosen where the error
// is raised, never inferred from its message.
type Kind int

const (
	// Internal is anything unanticipated. Its message is never shown to callers.
	Internal Kind = iota
	// Validation is malformed or missing input.
	Validation
	// Unauthorized covers missing, invalid or expired credentials.
	Unauthorized
	// Conflict is a duplicate email or category name.
	Conflict
	// NotFound is a missing resource, including one owned by another user.
	NotFound
	// BusinessRule is a request the data model forbids, such as deleting a
	// default category.
	BusinessRule
)

// InternalMessage is the only message callers see for Internal errors.
const InternalMessage = "Internal server error"

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Unauthorized:
		return "unauthorized"
	case Conflict:
		return "conflict"
	case NotFound:
		return "not_found"
	case BusinessRule:
		return "business_rule"
	default:
		return "internal"
	}
}

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case Validation, BusinessRule:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Conflict:
		return http.StatusConflict
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is an error tagged with a Kind and a caller-safe message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Invalid returns a Validation error.
func Invalid(message string) *Error { return New(Validation, message) }
func Unauthenticated(message string) *Error { return New(Unauthorized, message) }
func Duplicate(message string) *Error { return New(Conflict, message) }
func Missing(message string) *Error { return New(NotFound, message) }
func Forbidden(message string) *Error { return New(BusinessRule, message) }

// KindOf returns the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// StatusOf returns the HTTP status for err.
func StatusOf(err error) int {
	return KindOf(err).Status()
}

// PublicMessage returns the message that may be sent to the caller.
// Internal errors always yield InternalMessage.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Internal {
		return e.Message
	}
	return InternalMessage
}
