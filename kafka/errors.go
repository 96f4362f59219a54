package kafka

import (
	"context"
	"errors"
	"net/http"
	"strings"

	apperrors "github.com/kbukum/fluxkit/errors"
	"github.com/kbukum/fluxkit/resilience"
)

var connectionPatterns = []string{
	"connection refused",
	"connection reset",
	"broken pipe",
	"i/o timeout",
	"no route to host",
	"network is unreachable",
	"broker not available",
	"leader not available",
	"connection closed",
	"dial tcp",
	"network exception",
}

var retryablePatterns = []string{
	"temporary",
	"request timed out",
	"not enough replicas",
	"offset out of range",
}

var nonRetryablePatterns = []string{
	"message too large",
	"invalid topic",
	"invalid partition",
	"unknown topic",
	"authorization failed",
}

func matches(err error, patterns []string) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	for _, p := range patterns {
		if strings.Contains(errStr, p) {
			return true
		}
	}
	return false
}

// IsConnectionError checks if a Kafka error is a connection-level error.
func IsConnectionError(err error) bool { return matches(err, connectionPatterns) }

// IsRetryableError determines if a Kafka error should trigger a retry.
func IsRetryableError(err error) bool {
	return IsConnectionError(err) || matches(err, retryablePatterns)
}

// IsNonRetryableError checks if the error should not be retried.
func IsNonRetryableError(err error) bool { return matches(err, nonRetryablePatterns) }

// FromKafka converts a Kafka error to an AppError. Context errors are
// returned unchanged.
func FromKafka(err error, topic string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case apperrors.IsAppError(err):
		return err
	case errors.Is(err, resilience.ErrCircuitOpen), IsConnectionError(err):
		return (&apperrors.AppError{
			Code:       apperrors.ErrCodeServiceUnavailable,
			Message:    "Message queue is temporarily unavailable.",
			HTTPStatus: http.StatusServiceUnavailable,
			Retryable:  true,
			Details:    map[string]any{"topic": topic},
		}).WithCause(err)
	case IsNonRetryableError(err):
		return (&apperrors.AppError{
			Code:       apperrors.ErrCodeInvalidInput,
			Message:    "Unable to process the message.",
			HTTPStatus: http.StatusBadRequest,
			Details:    map[string]any{"topic": topic},
		}).WithCause(err)
	case IsRetryableError(err):
		return apperrors.ExternalServiceError("kafka", err).WithDetail("topic", topic)
	}
	return apperrors.Internal(err)
}
