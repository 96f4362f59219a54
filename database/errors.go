package database

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/kbukum/fluxkit/errors"
)

var busyPatterns = []string{
	"database is locked",
	"database table is locked",
	"sqlite_busy",
	"sqlite_locked",
	"too many connections",
}

var connectionPatterns = []string{
	"unable to open database file",
	"sql: database is closed",
	"driver: bad connection",
	"connection refused",
	"connection reset",
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

// IsConnectionError reports errors caused by an unusable connection.
func IsConnectionError(err error) bool {
	return matches(err, connectionPatterns)
}

// IsRetryableError reports errors worth retrying: connection failures and
// lock contention.
func IsRetryableError(err error) bool {
	return IsConnectionError(err) || matches(err, busyPatterns)
}

// FromDatabase converts a database error to an AppError.
func FromDatabase(err error, resource string) *apperrors.AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NotFound(resource, "")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.AlreadyExists(resource).WithCause(err)
	case IsRetryableError(err):
		return (&apperrors.AppError{
			Code:       apperrors.ErrCodeDatabaseError,
			Message:    fmt.Sprintf("Database is temporarily unavailable while accessing %s.", resource),
			HTTPStatus: http.StatusServiceUnavailable,
			Retryable:  true,
		}).WithCause(err)
	}
	return apperrors.DatabaseError(err).WithDetail("resource", resource)
}
