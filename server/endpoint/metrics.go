package endpoint

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// Metrics returns a handler that reports runtime memory and goroutine
// counts. Request and stream metrics are exported through OpenTelemetry.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		const mb = 1 << 20
		c.JSON(http.StatusOK, gin.H{
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"goroutines": runtime.NumGoroutine(),
			"cpus":       runtime.NumCPU(),
			"memory": gin.H{
				"heap_alloc_mb":  m.HeapAlloc / mb,
				"total_alloc_mb": m.TotalAlloc / mb,
				"sys_mb":         m.Sys / mb,
				"gc_runs":        m.NumGC,
			},
		})
	}
}
