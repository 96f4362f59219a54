package kafka

import (
	"context"
	"fmt"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/kbukum/fluxkit/logger"
	"github.com/kbukum/fluxkit/resilience"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Producer publishes events to the configured topic. Transient write
// errors are retried, and a circuit breaker rejects publishes while the
// brokers keep failing.
type Producer struct {
	writer  messageWriter
	cfg     Config
	log     *logger.Logger
	retry   resilience.RetryConfig
	breaker *resilience.CircuitBreaker
	mu      sync.RWMutex
	closed  bool
}

// NewProducer creates a producer backed by a kafka-go Writer. The writer
// connects on first publish.
func NewProducer(cfg Config, log *logger.Logger) (*Producer, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("kafka producer config: %w", err)
	}
	if !cfg.Enabled {
		return nil, fmt.Errorf("kafka is disabled")
	}

	transport, err := CreateTransport(&cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka producer transport: %w", err)
	}

	log = log.WithComponent("kafka.producer")
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Transport:    transport,
		Balancer:     &kafkago.Hash{},
		BatchSize:    cfg.BatchSize,
		BatchTimeout: ParseDuration(cfg.BatchTimeout),
		RequiredAcks: kafkago.RequiredAcks(cfg.RequiredAcks),
		Compression:  ResolveCompression(cfg.Compression),
		WriteTimeout: ParseDuration(cfg.WriteTimeout),
		ErrorLogger: kafkago.LoggerFunc(func(msg string, args ...any) {
			log.Error("writer: " + fmt.Sprintf(msg, args...))
		}),
	}

	log.Info("Kafka producer initialized", logger.Fields(
		"brokers", cfg.Brokers,
		"topic", cfg.Topic,
		"compression", cfg.Compression,
	))
	return newProducer(writer, cfg, log), nil
}

func newProducer(w messageWriter, cfg Config, log *logger.Logger) *Producer {
	retry := resilience.DefaultRetryConfig()
	retry.MaxAttempts = cfg.Retries
	retry.InitialBackoff = ParseDuration(cfg.RetryBackoff)
	retry.RetryIf = IsRetryableError
	retry.OnRetry = func(attempt int, err error, backoff time.Duration) {
		log.Warn("Retrying kafka write", logger.Fields(
			"attempt", attempt, "backoff", backoff.String(), "error", err.Error()))
	}

	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Name:        "kafka:" + cfg.Topic,
		MaxFailures: cfg.BreakerFailures,
		Timeout:     ParseDuration(cfg.BreakerTimeout),
		OnStateChange: func(name string, from, to resilience.State) {
			log.Warn("Circuit breaker state changed", logger.Fields(
				"breaker", name, "from", from.String(), "to", to.String()))
		},
	})
	return &Producer{writer: w, cfg: cfg, log: log, retry: retry, breaker: breaker}
}

// BreakerState reports whether publishing is currently allowed.
func (p *Producer) BreakerState() resilience.State {
	return p.breaker.State()
}

// Publish wraps data in an Event of eventType keyed by subject and writes it
// to the configured topic.
func (p *Producer) Publish(ctx context.Context, eventType, subject string, data any) error {
	event, err := NewEvent(p.cfg.Source, eventType, subject, data)
	if err != nil {
		return err
	}
	return p.PublishEvent(ctx, event)
}

// PublishEvent writes event to the configured topic.
func (p *Producer) PublishEvent(ctx context.Context, event Event) error {
	msg, err := event.ToMessage(p.cfg.Topic)
	if err != nil {
		return err
	}
	if err := p.write(ctx, msg); err != nil {
		return FromKafka(err, p.cfg.Topic)
	}
	p.log.Debug("Event published", logger.Fields("type", event.Type, "subject", event.Subject, "event_id", event.ID))
	return nil
}

func (p *Producer) write(ctx context.Context, msgs ...kafkago.Message) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return fmt.Errorf("producer is closed")
	}

	err := p.breaker.Execute(func() error {
		return resilience.RetryFunc(ctx, p.retry, func() error {
			return p.writer.WriteMessages(ctx, msgs...)
		})
	})
	if err != nil {
		return fmt.Errorf("write to %s: %w", p.cfg.Topic, err)
	}
	return nil
}

// Close flushes pending messages and closes the writer. Safe to call
// multiple times.
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.writer.Close()
}
