package endpoint

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/fluxkit/component"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, h gin.HandlerFunc) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	r := gin.New()
	r.GET("/", h)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	return rr, body
}

func checker(statuses ...component.HealthStatus) HealthChecker {
	return func(context.Context) []component.Health {
		out := make([]component.Health, len(statuses))
		for i, s := range statuses {
			out[i] = component.Health{Name: string(s), Status: s}
		}
		return out
	}
}

func TestOverall(t *testing.T) {
	tests := []struct {
		name string
		in   []component.HealthStatus
		want component.HealthStatus
	}{
		{"none", nil, component.StatusHealthy},
		{"disabled ignored", []component.HealthStatus{component.StatusHealthy, component.StatusDisabled}, component.StatusHealthy},
		{"degraded", []component.HealthStatus{component.StatusDegraded, component.StatusHealthy}, component.StatusDegraded},
		{"unhealthy wins", []component.HealthStatus{component.StatusDegraded, component.StatusUnhealthy}, component.StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overall(checker(tt.in...)(context.Background())); got != tt.want {
				t.Errorf("Overall() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	rr, body := serve(t, Health("moviesinfo", checker(component.StatusHealthy)))
	if rr.Code != http.StatusOK || body["status"] != "healthy" {
		t.Errorf("code = %d, body = %v", rr.Code, body)
	}

	rr, body = serve(t, Health("moviesinfo", checker(component.StatusUnhealthy)))
	if rr.Code != http.StatusServiceUnavailable || body["status"] != "unhealthy" {
		t.Errorf("code = %d, body = %v", rr.Code, body)
	}
}

func TestReadiness(t *testing.T) {
	rr, body := serve(t, Readiness("moviesinfo", checker(component.StatusUnhealthy)))
	if rr.Code != http.StatusServiceUnavailable || body["status"] != "not_ready" {
		t.Errorf("code = %d, body = %v", rr.Code, body)
	}
	rr, _ = serve(t, Readiness("moviesinfo", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("code = %d", rr.Code)
	}
}

func TestInfoAndChecks(t *testing.T) {
	_, body := serve(t, Info("moviesinfo", "1.2.3"))
	if body["version"] != "1.2.3" || body["service"] != "moviesinfo" {
		t.Errorf("info = %v", body)
	}
	if build, ok := body["build"].(map[string]any); !ok || build["go_version"] == "" {
		t.Errorf("build = %v", body["build"])
	}
	_, body = serve(t, Liveness("moviesinfo"))
	if body["status"] != "alive" {
		t.Errorf("liveness = %v", body)
	}
	_, body = serve(t, Metrics())
	if _, ok := body["goroutines"]; !ok {
		t.Errorf("metrics = %v", body)
	}
}
