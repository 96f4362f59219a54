package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/fluxkit/version"
)

var startTime = time.Now()

// Info returns a handler that reports the service name, configured version,
// build information and uptime.
func Info(serviceName, serviceVersion string) gin.HandlerFunc {
	build := version.Get()
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service":    serviceName,
			"version":    serviceVersion,
			"build":      build,
			"go_version": build.GoVersion,
			"uptime":     time.Since(startTime).Round(time.Second).String(),
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
		})
	}
}
