package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

// Event is the envelope written for every published domain event.
type Event struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Source      string          `json:"source"`
	ContentType string          `json:"content_type"`
	Version     string          `json:"version"`
	Timestamp   time.Time       `json:"timestamp"`
	Subject     string          `json:"subject,omitempty"`
	Data        json.RawMessage `json:"data,omitempty"`
}

// NewEvent wraps data in an Event with a fresh ID.
func NewEvent(source, eventType, subject string, data any) (Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s data: %w", eventType, err)
	}
	return Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		Source:      source,
		ContentType: "application/json",
		Version:     "1.0",
		Timestamp:   time.Now().UTC(),
		Subject:     subject,
		Data:        raw,
	}, nil
}

// ToMessage encodes the event for topic. The subject is the partition key.
func (e Event) ToMessage(topic string) (kafkago.Message, error) {
	value, err := json.Marshal(e)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("marshal event: %w", err)
	}
	key := e.Subject
	if key == "" {
		key = e.ID
	}
	return kafkago.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Time:  e.Timestamp,
		Headers: []kafkago.Header{
			{Key: "event-id", Value: []byte(e.ID)},
			{Key: "event-type", Value: []byte(e.Type)},
			{Key: "event-source", Value: []byte(e.Source)},
			{Key: "content-type", Value: []byte(e.ContentType)},
		},
	}, nil
}

// EventFromMessage decodes an Event written by ToMessage.
func EventFromMessage(msg kafkago.Message) (Event, error) {
	var e Event
	if err := json.Unmarshal(msg.Value, &e); err != nil {
		return Event{}, fmt.Errorf("decode event at %s/%d@%d: %w", msg.Topic, msg.Partition, msg.Offset, err)
	}
	return e, nil
}

// DecodeData unmarshals the event payload into v.
func (e Event) DecodeData(v any) error {
	return json.Unmarshal(e.Data, v)
}
