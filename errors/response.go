package errors

import (
	"context"
	stderrors "errors"
	"maps"
)

// ErrorResponse is the JSON body of a failed request or the data of an SSE
// error frame.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody contains the error details sent to clients.
type ErrorBody struct {
	Code      ErrorCode      `json:"code"`
	Message   string         `json:"message"`
	Retryable bool           `json:"retryable"`
	Details   map[string]any `json:"details,omitempty"`
	// Failure names the part of a stream composition that failed.
	Failure *StreamFailure `json:"failure,omitempty"`
}

// StreamFailure locates an upstream or operator failure.
type StreamFailure struct {
	// Stage is "source" or "operator".
	Stage string `json:"stage"`
	Name  string `json:"name"`
}

// ToResponse converts an AppError to an ErrorResponse. Details are copied;
// upstream and operator failures also report where the stream broke.
func (e *AppError) ToResponse() ErrorResponse {
	body := ErrorBody{
		Code:      e.Code,
		Message:   e.Message,
		Retryable: e.Retryable,
		Details:   maps.Clone(e.Details),
	}
	switch e.Code {
	case ErrCodeUpstreamFailure:
		body.Failure = e.streamFailure("source", "source")
	case ErrCodeOperatorFailure:
		body.Failure = e.streamFailure("operator", "operator")
	}
	return ErrorResponse{Error: body}
}

func (e *AppError) streamFailure(stage, key string) *StreamFailure {
	name, _ := e.Details[key].(string)
	return &StreamFailure{Stage: stage, Name: name}
}

// From classifies any error for transport: AppErrors are returned as they
// are, context errors become timeouts or cancellations, and anything else is
// an internal error.
func From(err error) *AppError {
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return Timeout("request").WithCause(err)
	case stderrors.Is(err, context.Canceled):
		return Cancelled(err)
	}
	return Internal(err)
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
