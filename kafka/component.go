package kafka

import (
	"context"
	"fmt"
	"strings"

	"github.com/kbukum/fluxkit/component"
	"github.com/kbukum/fluxkit/logger"
	"github.com/kbukum/fluxkit/resilience"
	"github.com/kbukum/fluxkit/util"
)

// Component owns the producer and consumer and implements component.Component.
type Component struct {
	cfg      Config
	log      *logger.Logger
	producer *Producer
	consumer *Consumer
}

var _ component.Component = (*Component)(nil)

// NewComponent creates a Kafka component for use with the component registry.
func NewComponent(cfg Config, log *logger.Logger) *Component {
	cfg.ApplyDefaults()
	return &Component{cfg: cfg, log: log}
}

// Producer returns the producer, or nil before Start or when disabled.
func (c *Component) Producer() *Producer { return c.producer }

// Consumer returns the consumer, or nil before Start or when disabled.
func (c *Component) Consumer() *Consumer { return c.consumer }

func (c *Component) Name() string { return "kafka" }

// Start creates the producer and consumer. Connections are opened lazily.
func (c *Component) Start(_ context.Context) error {
	if !c.cfg.Enabled {
		return nil
	}
	producer, err := NewProducer(c.cfg, c.log)
	if err != nil {
		return fmt.Errorf("kafka start: %w", err)
	}
	consumer, err := NewConsumer(c.cfg, c.log)
	if err != nil {
		_ = producer.Close()
		return fmt.Errorf("kafka start: %w", err)
	}
	c.producer, c.consumer = producer, consumer
	return nil
}

// Stop flushes and closes the producer.
func (c *Component) Stop(_ context.Context) error {
	return c.producer.Close()
}

// Health dials the first reachable broker.
func (c *Component) Health(ctx context.Context) component.Health {
	if !c.cfg.Enabled {
		return component.Health{Name: c.Name(), Status: component.StatusDisabled}
	}
	if c.producer != nil && c.producer.BreakerState() == resilience.StateOpen {
		return component.Health{Name: c.Name(), Status: component.StatusDegraded, Message: "publishing suspended: circuit breaker open"}
	}
	dialer, err := CreateDialer(&c.cfg)
	if err != nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: err.Error()}
	}
	var lastErr error
	for _, broker := range c.cfg.Brokers {
		conn, err := dialer.DialContext(ctx, "tcp", broker)
		if err == nil {
			_ = conn.Close()
			return component.Health{Name: c.Name(), Status: component.StatusHealthy}
		}
		lastErr = err
	}
	return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: lastErr.Error()}
}

func (c *Component) Describe() component.Description {
	details := fmt.Sprintf("%s topic=%s", strings.Join(c.cfg.Brokers, ","), c.cfg.Topic)
	if c.cfg.EnableSASL {
		details += fmt.Sprintf(" sasl=%s user=%s", c.cfg.SASLMechanism, util.MaskSecret(c.cfg.Username, 2))
	}
	return component.Description{Name: "Kafka", Type: "kafka", Details: details}
}
