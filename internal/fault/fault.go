package fault

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// Kind classifies an error so that tool handlers can report a stable
// category to the AI platform without inspecting upstream error types.
type Kind string

const (
	// KindAuth indicates a bad or missing credential, or a failed
	// access-control check. Never retried.
	KindAuth Kind = "auth"

	// KindValidation indicates malformed input (e.g. start >= end).
	// Surfaced immediately, never retried.
	KindValidation Kind = "validation"

	// KindNotFound indicates an unknown resource id. Non-fatal; callers
	// treat it as "already gone" where that makes sense.
	KindNotFound Kind = "not_found"

	// KindRemote indicates a non-2xx response from the calendar service.
	// Carries the upstream status code and message.
	KindRemote Kind = "remote"

	// KindFormat indicates a document that could not be parsed (e.g. a
	// file that is not a valid PDF).
	KindFormat Kind = "format"
)

// Error is the error type used at package boundaries throughout puchcal.
// It carries a kind, a message, an optional upstream HTTP status and an
// optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Status  int // upstream HTTP status, 0 if not applicable
	cause   error
}

func (e *Error) Error() string {
	switch {
	case e.Status != 0 && e.cause != nil:
		return fmt.Sprintf("%s (%d): %s: %v", e.Kind, e.Status, e.Message, e.cause)
	case e.Status != 0:
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	case e.cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a new Error of the given kind.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a new Error of the given kind wrapping a cause.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), cause: cause}
}

// KindOf returns the kind of err, or an empty Kind if err is not a
// fault error (directly or wrapped).
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// IsKind reports whether err is a fault error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// FromGoogleAPI maps a Google API client error to a fault error.
// 401/403 become auth errors, 404/410 become not-found, everything else
// is a remote error carrying the upstream status and message. Errors that
// are not *googleapi.Error (e.g. network failures) become remote errors
// without a status.
func FromGoogleAPI(err error, format string, args ...interface{}) *Error {
	msg := fmt.Sprintf(format, args...)

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return &Error{Kind: KindRemote, Message: msg, cause: err}
	}

	kind := KindRemote
	switch gerr.Code {
	case 401, 403:
		kind = KindAuth
	case 404, 410:
		kind = KindNotFound
	}

	return &Error{Kind: kind, Message: msg, Status: gerr.Code, cause: err}
}
