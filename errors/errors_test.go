package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New(t *testing.T) {
	err := New(ErrCodeNotFound, "not found", http.StatusNotFound)
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, err.HTTPStatus)
	}
	if err.Retryable {
		t.Error("NOT_FOUND should not be retryable")
	}
	if !New(ErrCodeTimeout, "slow", http.StatusGatewayTimeout).Retryable {
		t.Error("TIMEOUT should be retryable")
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{"without cause", Validation("bad"), "INVALID_INPUT: bad"},
		{"with cause", Validation("bad").WithCause(fmt.Errorf("boom")), "INVALID_INPUT: bad (cause: boom)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUpstreamFailure(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := UpstreamFailure("movieinfo.store", cause)
	if err.Code != ErrCodeUpstreamFailure {
		t.Errorf("expected UPSTREAM_FAILURE, got %s", err.Code)
	}
	if err.HTTPStatus != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", err.HTTPStatus)
	}
	if !err.Retryable {
		t.Error("upstream failures should be retryable")
	}
	if err.Details["source"] != "movieinfo.store" {
		t.Errorf("expected source detail, got %v", err.Details["source"])
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
	if !IsUpstreamFailure(fmt.Errorf("wrapped: %w", err)) {
		t.Error("IsUpstreamFailure should see through wrapping")
	}
	if IsOperatorFailure(err) {
		t.Error("upstream failure must not be classified as operator failure")
	}
}

func TestOperatorFailure(t *testing.T) {
	err := OperatorFailure("map", fmt.Errorf("nil name"))
	if err.Code != ErrCodeOperatorFailure {
		t.Errorf("expected OPERATOR_FAILURE, got %s", err.Code)
	}
	if err.Retryable {
		t.Error("operator failures should not be retryable")
	}
	if !IsOperatorFailure(err) {
		t.Error("IsOperatorFailure = false")
	}
	if !strings.Contains(err.Error(), "map") {
		t.Errorf("expected operator name in message, got %q", err.Error())
	}
}

func TestCancelled(t *testing.T) {
	err := Cancelled(context.Canceled)
	if err.Code != ErrCodeCancelled {
		t.Errorf("expected CANCELLED, got %s", err.Code)
	}
	if !stderrors.Is(err, context.Canceled) {
		t.Error("expected cause context.Canceled")
	}
}

func TestNotFound(t *testing.T) {
	err := NotFound("movie info", "abc")
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected 404, got %d", err.HTTPStatus)
	}
	if err.Details["id"] != "abc" {
		t.Errorf("expected id=abc, got %v", err.Details["id"])
	}
	if _, ok := NotFound("movie info", "").Details["id"]; ok {
		t.Error("expected no id detail when id is empty")
	}
	if !IsNotFound(err) {
		t.Error("IsNotFound = false")
	}
}

func TestConstructors_Status(t *testing.T) {
	tests := []struct {
		name      string
		err       *AppError
		status    int
		retryable bool
	}{
		{"service unavailable", ServiceUnavailable("redis"), http.StatusServiceUnavailable, true},
		{"connection failed", ConnectionFailed("mongo"), http.StatusServiceUnavailable, true},
		{"timeout", Timeout("save"), http.StatusGatewayTimeout, true},
		{"already exists", AlreadyExists("movie info"), http.StatusConflict, false},
		{"invalid input", InvalidInput("year", "negative"), http.StatusBadRequest, false},
		{"missing field", MissingField("name"), http.StatusBadRequest, false},
		{"internal", Internal(nil), http.StatusInternalServerError, false},
		{"database", DatabaseError(fmt.Errorf("locked")), http.StatusInternalServerError, true},
		{"external", ExternalServiceError("kafka", nil), http.StatusBadGateway, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.HTTPStatus != tt.status {
				t.Errorf("status = %d, want %d", tt.err.HTTPStatus, tt.status)
			}
			if tt.err.Retryable != tt.retryable {
				t.Errorf("retryable = %v, want %v", tt.err.Retryable, tt.retryable)
			}
		})
	}
}

func TestWithDetails(t *testing.T) {
	err := Validation("bad").WithDetail("a", 1).WithDetails(map[string]any{"b": 2})
	if err.Details["a"] != 1 || err.Details["b"] != 2 {
		t.Errorf("unexpected details %v", err.Details)
	}
}

func TestToResponse(t *testing.T) {
	resp := NotFound("movie info", "1").ToResponse()
	if resp.Error.Code != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", resp.Error.Code)
	}
	if resp.Error.Details["id"] != "1" {
		t.Errorf("expected id detail, got %v", resp.Error.Details)
	}
}

func TestToResponse_StreamFailures(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want *StreamFailure
	}{
		{"upstream", UpstreamFailure("database", stderrors.New("disk full")), &StreamFailure{Stage: "source", Name: "database"}},
		{"operator", OperatorFailure("tryMap", stderrors.New("bad year")), &StreamFailure{Stage: "operator", Name: "tryMap"}},
		{"other", NotFound("movieInfo", "1"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.ToResponse().Error.Failure
			if (got == nil) != (tt.want == nil) || (got != nil && *got != *tt.want) {
				t.Errorf("failure = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestToResponse_CopiesDetails(t *testing.T) {
	err := NotFound("movieInfo", "1")
	resp := err.ToResponse()
	resp.Error.Details["id"] = "2"
	if err.Details["id"] != "1" {
		t.Errorf("response shares the error's details: %v", err.Details)
	}
}

func TestFrom(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorCode
	}{
		{NotFound("movieInfo", "1"), ErrCodeNotFound},
		{fmt.Errorf("wrapped: %w", Validation("bad")), ErrCodeInvalidInput},
		{context.DeadlineExceeded, ErrCodeTimeout},
		{context.Canceled, ErrCodeCancelled},
		{stderrors.New("x"), ErrCodeInternal},
	}
	for _, tt := range tests {
		if got := From(tt.err).Code; got != tt.want {
			t.Errorf("From(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", Internal(nil))
	if !IsAppError(wrapped) {
		t.Error("IsAppError = false for wrapped AppError")
	}
	appErr, ok := AsAppError(wrapped)
	if !ok || appErr.Code != ErrCodeInternal {
		t.Errorf("AsAppError = %v, %v", appErr, ok)
	}
	if _, ok := AsAppError(fmt.Errorf("plain")); ok {
		t.Error("AsAppError should fail for plain errors")
	}
}
