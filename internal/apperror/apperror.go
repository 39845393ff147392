// Package apperror defines the tagged failures returned by the service layer.
//
// Every expected failure carries one of the sentinel errors below as its
// tag. Handlers never inspect messages to decide a status code: they use
// errors.Is against the sentinels and map them to HTTP (see handler/response.go).
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("Validation Error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")
)

type AppError struct {
	Err     error    // sentinel tag (ErrNotFound, ErrValidation, ...)
	Message string   // Human-readable error message
	Details []string // Optional: one entry per violated rule
	cause   error    // unexpected error behind an ErrInternal, never shown to clients
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Cause returns the underlying error of an internal failure, or nil.
func (e *AppError) Cause() error {
	return e.cause
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

// NotFoundMessage is NotFound with a caller-supplied message, for lookups
// that are not keyed by a single id (e.g. "no tasks found for user").
func NotFoundMessage(message string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: message,
	}
}

// Validation bundles several rule violations into one failure.
// Details keeps every message in the order the rules were evaluated.
func Validation(messages []string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: "validation failed",
		Details: messages,
	}
}

// ConflictMessage reports a write that collides with existing data,
// e.g. a second account for the same email.
func ConflictMessage(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}

// Unauthorized returns an AppError for failed authentication.
// HTTP handlers map this to 401 Unauthorized.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// Internal wraps an unexpected error. The message is generic; the cause is
// kept for server-side logging only.
func Internal(cause error) *AppError {
	return &AppError{
		Err:     ErrInternal,
		Message: "an internal error occurred",
		cause:   cause,
	}
}
