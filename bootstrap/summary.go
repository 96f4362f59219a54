package bootstrap

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kbukum/fluxkit/component"
)

// RouteInfo is one HTTP route shown in the summary.
type RouteInfo struct {
	Method  string
	Path    string
	Handler string
}

// StreamInfo is a long-lived event stream the service relays, such as a
// Kafka topic behind an SSE route.
type StreamInfo struct {
	Name   string
	Source string
	Route  string
}

// Summary collects what a service started with and prints it once at
// startup.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	routes          []RouteInfo
	streams         []StreamInfo
}

// NewSummary creates an empty summary.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{serviceName: serviceName, version: version}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// TrackRoute records an HTTP route.
func (s *Summary) TrackRoute(method, path, handler string) {
	s.routes = append(s.routes, RouteInfo{Method: method, Path: path, Handler: handler})
}

// TrackStream records a relayed event stream.
func (s *Summary) TrackStream(name, source, route string) {
	s.streams = append(s.streams, StreamInfo{Name: name, Source: source, Route: route})
}

// Write prints the summary to w. Components are listed with their
// description and current health; registry may be nil.
func (s *Summary) Write(ctx context.Context, w io.Writer, registry *component.Registry) {
	fmt.Fprintf(w, "\n%s v%s started in %.2fs\n", s.serviceName, s.version, s.startupDuration.Seconds())

	if registry != nil {
		s.writeComponents(ctx, w, registry)
	}

	if len(s.routes) > 0 {
		fmt.Fprintf(w, "\nRoutes (%d)\n", len(s.routes))
		for i, r := range s.routes {
			fmt.Fprintf(w, "   %s %-7s %s -> %s\n", treePrefix(i, len(s.routes)), r.Method, r.Path, r.Handler)
		}
	}

	if len(s.streams) > 0 {
		fmt.Fprintf(w, "\nStreams\n")
		for i, st := range s.streams {
			fmt.Fprintf(w, "   %s %s (%s) -> %s\n", treePrefix(i, len(s.streams)), st.Name, st.Source, st.Route)
		}
	}
	fmt.Fprintln(w)
}

func (s *Summary) writeComponents(ctx context.Context, w io.Writer, registry *component.Registry) {
	health := make(map[string]component.Health)
	for _, h := range registry.HealthAll(ctx) {
		health[h.Name] = h
	}

	all := registry.All()
	if len(all) == 0 {
		fmt.Fprintf(w, "\nComponents\n   └── none registered\n")
		return
	}

	fmt.Fprintf(w, "\nComponents\n")
	ready := 0
	for i, c := range all {
		h := health[c.Name()]
		if h.Status == component.StatusHealthy || h.Status == component.StatusDisabled {
			ready++
		}
		line := c.Name()
		if d, ok := c.(component.Describable); ok {
			desc := d.Describe()
			if desc.Details != "" {
				line += ": " + desc.Details
			}
			if desc.Port > 0 {
				line += fmt.Sprintf(" (:%d)", desc.Port)
			}
		}
		status := strings.ToLower(string(h.Status))
		if h.Message != "" {
			status += ", " + h.Message
		}
		fmt.Fprintf(w, "   %s %s %s [%s]\n", treePrefix(i, len(all)), healthIcon(h.Status), line, status)
	}

	if ready == len(all) {
		fmt.Fprintf(w, "\nAll components ready (%d/%d)\n", ready, len(all))
	} else {
		fmt.Fprintf(w, "\nSome components have issues (%d/%d ready)\n", ready, len(all))
	}
}

func treePrefix(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func healthIcon(status component.HealthStatus) string {
	switch status {
	case component.StatusHealthy:
		return "✅"
	case component.StatusDegraded:
		return "⚠️"
	case component.StatusUnhealthy:
		return "❌"
	case component.StatusDisabled:
		return "⏸️"
	default:
		return "❓"
	}
}
