package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/kbukum/fluxkit/logger"
)

var quietPaths = map[string]bool{
	"/health":  true,
	"/alive":   true,
	"/ready":   true,
	"/metrics": true,
}

// RequestLogger logs every request with method, path, status and duration.
// Health, liveness, readiness and metrics paths are skipped.
func RequestLogger(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if quietPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)
			duration := time.Since(start)

			fields := logger.Fields(
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				logger.FieldDuration, duration.Milliseconds(),
			)
			if q := r.URL.RawQuery; q != "" {
				fields["query"] = q
			}
			if isStream(sw) {
				fields["stream"] = true
			}
			logByStatus(log.WithContext(r.Context()), fields, sw.status)
		})
	}
}

func isStream(sw *statusWriter) bool {
	return strings.HasPrefix(sw.Header().Get("Content-Type"), "text/event-stream")
}

func logByStatus(log *logger.Logger, fields map[string]interface{}, status int) {
	switch {
	case status >= 500:
		log.Error("Request completed", fields)
	case status >= 400:
		log.Warn("Request completed", fields)
	default:
		log.Debug("Request completed", fields)
	}
}
