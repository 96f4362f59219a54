package movieinfo

import (
	"context"
	"testing"

	"github.com/kbukum/fluxkit/flux"
	"github.com/kbukum/fluxkit/kafka"
)

func TestEventsFrom(t *testing.T) {
	newEvent := func(eventType string, data any) kafka.Event {
		t.Helper()
		e, err := kafka.NewEvent("moviesinfo", eventType, "abc", data)
		if err != nil {
			t.Fatalf("NewEvent: %v", err)
		}
		return e
	}
	in := flux.Just(
		newEvent(EventCreated, MovieInfo{ID: "abc", Name: "Dark Knight Rises", Year: 2012}),
		newEvent("review.created", map[string]string{"id": "r1"}),
		newEvent(EventDeleted, MovieInfo{ID: "abc"}),
	)

	got, err := EventsFrom(in).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Type != EventCreated || got[0].MovieInfo.Name != "Dark Knight Rises" {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].Type != EventDeleted || got[1].MovieInfo.ID != "abc" {
		t.Errorf("second = %+v", got[1])
	}
	if got[0].ID == "" || got[0].Time.IsZero() {
		t.Errorf("envelope fields not carried: %+v", got[0])
	}
}

func TestEventsFrom_MalformedPayload(t *testing.T) {
	bad := kafka.Event{Type: EventUpdated, Data: []byte(`"not an object"`)}
	if _, err := EventsFrom(flux.Just(bad)).Collect(context.Background()); err == nil {
		t.Error("expected decode failure")
	}
}
