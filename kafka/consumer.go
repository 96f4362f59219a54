package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/kbukum/fluxkit/flux"
	"github.com/kbukum/fluxkit/logger"
)

type messageReader interface {
	ReadMessage(ctx context.Context) (kafkago.Message, error)
	Close() error
}

// Consumer streams the events of the configured topic.
type Consumer struct {
	cfg       Config
	log       *logger.Logger
	newReader func() messageReader
}

// NewConsumer creates a consumer for cfg.Topic.
func NewConsumer(cfg Config, log *logger.Logger) (*Consumer, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("kafka consumer config: %w", err)
	}
	if !cfg.Enabled {
		return nil, fmt.Errorf("kafka is disabled")
	}

	dialer, err := CreateDialer(&cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer dialer: %w", err)
	}

	log = log.WithComponent("kafka.consumer")
	return newConsumer(cfg, log, func() messageReader {
		return kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:     cfg.Brokers,
			Topic:       cfg.Topic,
			Dialer:      dialer,
			StartOffset: resolveStartOffset(cfg.StartOffset),
			MinBytes:    1,
			MaxBytes:    10e6,
			MaxWait:     ParseDuration(cfg.MaxWait),
			ErrorLogger: kafkago.LoggerFunc(func(msg string, args ...any) {
				log.Error("reader: "+fmt.Sprintf(msg, args...), logger.Fields("topic", cfg.Topic))
			}),
		})
	}), nil
}

func newConsumer(cfg Config, log *logger.Logger, newReader func() messageReader) *Consumer {
	return &Consumer{cfg: cfg, log: log, newReader: newReader}
}

// Events tails the topic. Each run opens its own reader, so concurrent
// subscribers each see every event. Messages that are not events are
// skipped.
func (c *Consumer) Events() flux.Stream[Event] {
	return flux.FromIterator("kafka", func(context.Context) (flux.Iterator[Event], error) {
		return &eventIterator{reader: c.newReader(), topic: c.cfg.Topic, log: c.log}, nil
	})
}

type eventIterator struct {
	reader messageReader
	topic  string
	log    *logger.Logger
}

func (it *eventIterator) Next(ctx context.Context) (Event, bool, error) {
	for {
		msg, err := it.reader.ReadMessage(ctx)
		switch {
		case errors.Is(err, io.EOF):
			return Event{}, false, nil
		case err != nil:
			if ctx.Err() != nil {
				return Event{}, false, ctx.Err()
			}
			return Event{}, false, FromKafka(err, it.topic)
		}

		event, err := EventFromMessage(msg)
		if err != nil {
			it.log.WithError(err).Warn("Skipping malformed event")
			continue
		}
		return event, true, nil
	}
}

func (it *eventIterator) Close() error {
	return it.reader.Close()
}
