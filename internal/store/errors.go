package store

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is a machine-readable error kind. Every error surfaced by the store
// carries one so callers can branch without string matching.
type Kind string

// Error kinds surfaced by the store.
const (
	KindNotFound         Kind = "NOT_FOUND"
	KindAlreadyExists    Kind = "ALREADY_EXISTS"
	KindInvalidInput     Kind = "INVALID_INPUT"
	KindDuplicateEdge    Kind = "DUPLICATE_EDGE"
	KindInvalidPair      Kind = "INVALID_PAIR"
	KindAlreadySoulmates Kind = "ALREADY_SOULMATES"
	KindUnavailable      Kind = "UNAVAILABLE"
)

// Error is a domain error with a kind and an HTTP status code.
type Error struct {
	Kind    Kind              // Machine-readable kind
	Code    int               // HTTP status code
	Message string            // User-facing message
	Err     error             // Underlying error (optional)
	Details map[string]string // Per-field messages (optional)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target matches this error. Matches when target is an
// *Error with the same kind, so values derived with WithMessage/WithCause
// still compare equal to their sentinel.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// HTTPCode returns the HTTP status code associated with this error.
func (e *Error) HTTPCode() int { return e.Code }

// WithMessage returns a new error with a custom message.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{
		Kind:    e.Kind,
		Code:    e.Code,
		Message: msg,
		Err:     e.Err,
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Kind:    e.Kind,
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// WithDetails attaches per-field messages, typically from input validation.
func (e *Error) WithDetails(details map[string]string) *Error {
	return &Error{
		Kind:    e.Kind,
		Code:    e.Code,
		Message: e.Message,
		Err:     e.Err,
		Details: details,
	}
}

// Sentinel errors. Compare with errors.Is.
var (
	ErrNotFound = &Error{
		Kind:    KindNotFound,
		Code:    http.StatusNotFound,
		Message: "resource not found",
	}

	ErrAlreadyExists = &Error{
		Kind:    KindAlreadyExists,
		Code:    http.StatusConflict,
		Message: "resource already exists",
	}

	ErrInvalidInput = &Error{
		Kind:    KindInvalidInput,
		Code:    http.StatusBadRequest,
		Message: "invalid input",
	}

	// ErrDuplicateEdge is returned when the same directional interest edge
	// (actor, target, kind) is submitted twice. Recoverable: the first
	// submission already holds.
	ErrDuplicateEdge = &Error{
		Kind:    KindDuplicateEdge,
		Code:    http.StatusConflict,
		Message: "interest already recorded",
	}

	// ErrInvalidPair is returned when a user would be paired with themself.
	ErrInvalidPair = &Error{
		Kind:    KindInvalidPair,
		Code:    http.StatusBadRequest,
		Message: "cannot pair a user with themself",
	}

	// ErrAlreadySoulmates is returned when a soulmate pair already exists
	// for the two users. The engine treats it as benign.
	ErrAlreadySoulmates = &Error{
		Kind:    KindAlreadySoulmates,
		Code:    http.StatusConflict,
		Message: "users are already soulmates",
	}

	// ErrUnavailable indicates a transient storage failure (e.g. the
	// database was busy). No logical state was observed; this is the only
	// error kind callers should retry.
	ErrUnavailable = &Error{
		Kind:    KindUnavailable,
		Code:    http.StatusServiceUnavailable,
		Message: "storage temporarily unavailable",
	}
)
