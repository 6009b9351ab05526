package core

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// CommandError carries the HTTP status code a failed command or query
// should be reported with.
type CommandError struct {
	Err        error
	StatusCode int
	Reason     *string
}

type CommandErrorOption func(*CommandError)

// WithReason replaces the underlying error message in the response body.
func WithReason(reason string) CommandErrorOption {
	return func(e *CommandError) {
		e.Reason = &reason
	}
}

func NewCommandError(statusCode int, err error, opts ...CommandErrorOption) CommandError {
	e := CommandError{
		StatusCode: statusCode,
		Err:        err,
	}

	for _, opt := range opts {
		opt(&e)
	}

	return e
}

// NewInternalError reports err as a 500 whose message is the root cause,
// leaving any wrapping context to the logs.
func NewInternalError(err error) CommandError {
	return NewCommandError(http.StatusInternalServerError, err, WithReason(errors.Cause(err).Error()))
}

// Message is the text reported to the caller.
func (e CommandError) Message() string {
	if e.Reason != nil {
		return *e.Reason
	}

	if e.Err != nil {
		return e.Err.Error()
	}

	return ""
}

func (e CommandError) Error() string {
	if e.Reason != nil && e.Err != nil {
		return fmt.Sprintf("%d %s: %s", e.StatusCode, *e.Reason, e.Err.Error())
	}

	return fmt.Sprintf("%d %s", e.StatusCode, e.Message())
}

func (e CommandError) Unwrap() error {
	return e.Err
}

func (e CommandError) MarshalJSON() ([]byte, error) {
	return json.Marshal(ErrorResponse{Message: e.Message()})
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Message string `json:"message"`
}
