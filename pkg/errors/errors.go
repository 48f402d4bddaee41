// Package errors defines the sentinel errors shared by the indexer, the
// search surfaces, and the collaborators that feed them, plus an AppError
// that carries an HTTP status for the handlers.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrIndexNotReady    = errors.New("index not built")
	ErrIndexBuilt       = errors.New("index already built")
	ErrTimeout          = errors.New("operation timed out")
)

type AppError struct {
	Err        error
	Message    string
	StatusCode int
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, statusCode int, message string) *AppError {
	return &AppError{
		Err:        sentinel,
		Message:    message,
		StatusCode: statusCode,
	}
}

func Newf(sentinel error, statusCode int, format string, args ...any) *AppError {
	return &AppError{
		Err:        sentinel,
		Message:    fmt.Sprintf(format, args...),
		StatusCode: statusCode,
	}
}

// NotFound wraps ErrResourceNotFound with the name of the missing resource.
func NotFound(kind, name string) *AppError {
	return Newf(ErrResourceNotFound, http.StatusNotFound, "%s %q", kind, name)
}

func HTTPStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrIndexBuilt):
		return http.StatusConflict
	case errors.Is(err, ErrIndexNotReady), errors.Is(err, ErrTimeout):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
