package fetch

import (
	"errors"
	"fmt"
	"net/http"

	"stock-forecast-dashboard/internal/dashboard/repository"
)

// ErrorKind groups failures by what the user can do about them.
type ErrorKind string

const (
	KindInput        ErrorKind = "input"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindAuthRequired ErrorKind = "auth_required"
	KindConnection   ErrorKind = "connection"
	KindData         ErrorKind = "data"
	KindUnknown      ErrorKind = "unknown"
)

// User-facing messages.
const (
	MessageInput      = "Symbol not found or not in S&P 500 coverage."
	MessageConnection = "Connection failed. Please try again."
	MessageData       = "Prediction data unavailable or malformed."
	MessageAuth       = "Please sign in to continue."
	MessageConflict   = "This prediction is already being tracked."
)

// Failure is a classified error ready to be shown.
type Failure struct {
	Kind       ErrorKind `json:"kind"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	StatusCode int       `json:"status_code,omitempty"`
	Err        error     `json:"-"`
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %v", f.Kind, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Unwrap exposes the classified error.
func (f *Failure) Unwrap() error { return f.Err }

// NewFailure builds a failure that does not come from a backend call, such
// as a prediction with unusable prices.
func NewFailure(kind ErrorKind, message string) *Failure {
	return &Failure{Kind: kind, Message: message}
}

// Classify converts a client error into a Failure. It returns nil for nil.
func Classify(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}

	status := repository.StatusCodeOf(err)
	detail := repository.DetailOf(err)
	failure := &Failure{StatusCode: status, Detail: detail, Err: err}

	switch {
	case errors.Is(err, repository.ErrUnauthenticated), repository.IsUnauthorized(err):
		failure.Kind, failure.Message = KindAuthRequired, MessageAuth
	case errors.Is(err, repository.ErrConnectionFailed):
		failure.Kind, failure.Message = KindConnection, MessageConnection
	case errors.Is(err, repository.ErrMalformedResponse):
		failure.Kind, failure.Message = KindData, MessageData
	case status == http.StatusConflict:
		failure.Kind, failure.Message = KindConflict, MessageConflict
		if detail != "" {
			failure.Message = detail
		}
	case status == http.StatusNotFound:
		failure.Kind, failure.Message = KindNotFound, MessageInput
	case status >= http.StatusBadRequest && status < http.StatusInternalServerError:
		failure.Kind, failure.Message = KindInput, MessageInput
	case status >= http.StatusInternalServerError:
		failure.Kind, failure.Message = KindUnknown, "The forecast service is unavailable. Please try again later."
	default:
		failure.Kind, failure.Message = KindUnknown, "Something went wrong. Please try again."
	}
	return failure
}
