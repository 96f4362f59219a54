package component

import (
	"context"
	"fmt"
	"slices"
	"testing"

	"github.com/kbukum/fluxkit/logger"
)

type mockComponent struct {
	name     string
	startErr error
	stopErr  error
	health   Health
	events   *[]string
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	if m.events != nil {
		*m.events = append(*m.events, "start:"+m.name)
	}
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	if m.events != nil {
		*m.events = append(*m.events, "stop:"+m.name)
	}
	return m.stopErr
}
func (m *mockComponent) Health(ctx context.Context) Health {
	return m.health
}

type describedComponent struct {
	mockComponent
}

func (d *describedComponent) Describe() Description {
	return Description{Type: "cache", Details: "localhost:6379"}
}

func newRegistry() *Registry {
	return NewRegistry(logger.Nop())
}

func TestRegisterDuplicate(t *testing.T) {
	r := newRegistry()
	if err := r.Register(&mockComponent{name: "db"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(&mockComponent{name: "db"}); err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestGet(t *testing.T) {
	r := newRegistry()
	r.Register(&mockComponent{name: "db"})

	if got := r.Get("db"); got == nil || got.Name() != "db" {
		t.Errorf("Get(db) = %v", got)
	}
	if got := r.Get("missing"); got != nil {
		t.Error("expected nil for unregistered component")
	}
	if len(r.All()) != 1 {
		t.Errorf("All() = %d components", len(r.All()))
	}
}

func TestStartStopOrder(t *testing.T) {
	r := newRegistry()
	var events []string
	r.Register(&mockComponent{name: "db", events: &events})
	r.Register(&describedComponent{mockComponent{name: "cache", events: &events}})
	r.Register(&mockComponent{name: "kafka", events: &events})

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}

	want := []string{"start:db", "start:cache", "start:kafka", "stop:kafka", "stop:cache", "stop:db"}
	if !slices.Equal(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
}

func TestStartAllStartsOnlyNewComponents(t *testing.T) {
	r := newRegistry()
	var events []string
	r.Register(&mockComponent{name: "db", events: &events})
	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	r.Register(&mockComponent{name: "server", events: &events})
	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("second StartAll failed: %v", err)
	}
	want := []string{"start:db", "start:server"}
	if !slices.Equal(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
}

func TestStartAllFailureStopsStarted(t *testing.T) {
	r := newRegistry()
	var events []string
	r.Register(&mockComponent{name: "db", events: &events})
	r.Register(&mockComponent{name: "cache", events: &events, startErr: fmt.Errorf("connection refused")})
	r.Register(&mockComponent{name: "kafka", events: &events})

	if err := r.StartAll(context.Background()); err == nil {
		t.Fatal("expected error from StartAll")
	}
	want := []string{"start:db", "start:cache", "stop:db"}
	if !slices.Equal(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
}

func TestStopAllSkipsUnstarted(t *testing.T) {
	r := newRegistry()
	var events []string
	r.Register(&mockComponent{name: "db", events: &events})

	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no stops for unstarted components, got %v", events)
	}
}

func TestStopAllWithErrors(t *testing.T) {
	r := newRegistry()
	r.Register(&mockComponent{name: "db", stopErr: fmt.Errorf("stop failed")})
	r.StartAll(context.Background())

	if err := r.StopAll(context.Background()); err == nil {
		t.Error("expected error from StopAll")
	}
}

func TestHealthAll(t *testing.T) {
	r := newRegistry()
	r.Register(&mockComponent{
		name:   "db",
		health: Health{Name: "db", Status: StatusHealthy, Message: "connected"},
	})
	r.Register(&mockComponent{
		name:   "cache",
		health: Health{Name: "cache", Status: StatusUnhealthy, Message: "timeout"},
	})

	results := r.HealthAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Status != StatusHealthy {
		t.Errorf("expected db healthy, got %s", results[0].Status)
	}
	if results[1].Status != StatusUnhealthy {
		t.Errorf("expected cache unhealthy, got %s", results[1].Status)
	}
}
