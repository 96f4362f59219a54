package movieinfo

import (
	"context"
	"time"

	"github.com/kbukum/fluxkit/flux"
	"github.com/kbukum/fluxkit/kafka"
)

// Event types published after successful mutations.
const (
	EventCreated = "movieinfo.created"
	EventUpdated = "movieinfo.updated"
	EventDeleted = "movieinfo.deleted"
)

// EventPublisher delivers a domain event keyed by subject.
type EventPublisher interface {
	Publish(ctx context.Context, eventType, subject string, data any) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, any) error { return nil }

// Event is a movie-info change as relayed to clients.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Time      time.Time `json:"time"`
	MovieInfo MovieInfo `json:"movieInfo"`
}

// EventsFrom decodes the movie-info events of a Kafka event stream. Other
// event types are skipped.
func EventsFrom(events flux.Stream[kafka.Event]) flux.Stream[Event] {
	ours := events.Filter(func(e kafka.Event) bool {
		switch e.Type {
		case EventCreated, EventUpdated, EventDeleted:
			return true
		}
		return false
	})
	return flux.TryMap(ours, func(e kafka.Event) (Event, error) {
		var m MovieInfo
		if err := e.DecodeData(&m); err != nil {
			return Event{}, err
		}
		return Event{ID: e.ID, Type: e.Type, Time: e.Timestamp, MovieInfo: m}, nil
	})
}
