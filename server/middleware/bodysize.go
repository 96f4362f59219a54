package middleware

import (
	"net/http"

	"github.com/kbukum/fluxkit/util"
)

const defaultMaxBodySize = 1 << 20

// BodySizeLimit restricts request bodies to maxSize ("512KB", "1MB", "1GB";
// a bare number is bytes).
func BodySizeLimit(maxSize string) Middleware {
	size := util.ParseSize(maxSize, defaultMaxBodySize)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, size)
			}
			next.ServeHTTP(w, r)
		})
	}
}
