package observability

import (
	"context"
	"errors"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/fluxkit/component"
)

// Component owns the tracer and meter providers of a service.
type Component struct {
	cfg         Config
	serviceName string
	version     string
	environment string

	tp      *sdktrace.TracerProvider
	mp      *sdkmetric.MeterProvider
	metrics *Metrics
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent creates the observability component for a service.
func NewComponent(cfg Config, serviceName, version, environment string) *Component {
	cfg.ApplyDefaults()
	return &Component{cfg: cfg, serviceName: serviceName, version: version, environment: environment}
}

// Metrics returns the stream instruments, or nil when disabled or not
// started. A nil *Metrics records nothing.
func (c *Component) Metrics() *Metrics { return c.metrics }

func (c *Component) Name() string { return "observability" }

// Start installs the OTLP tracer and meter providers globally.
func (c *Component) Start(ctx context.Context) error {
	if !c.cfg.Enabled {
		return nil
	}
	tp, err := InitTracer(ctx, c.cfg.Tracer(c.serviceName, c.version, c.environment))
	if err != nil {
		return fmt.Errorf("observability start: %w", err)
	}
	mp, err := InitMeter(ctx, c.cfg.Meter(c.serviceName, c.version, c.environment))
	if err != nil {
		_ = tp.Shutdown(ctx)
		return fmt.Errorf("observability start: %w", err)
	}
	metrics, err := NewMetrics(mp.Meter(instrumentationName))
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return fmt.Errorf("observability metrics: %w", err)
	}
	c.tp, c.mp, c.metrics = tp, mp, metrics
	return nil
}

// Stop flushes and shuts down both providers.
func (c *Component) Stop(ctx context.Context) error {
	var errs []error
	if c.tp != nil {
		errs = append(errs, c.tp.Shutdown(ctx))
		c.tp = nil
	}
	if c.mp != nil {
		errs = append(errs, c.mp.Shutdown(ctx))
		c.mp = nil
	}
	return errors.Join(errs...)
}

// Health reports disabled, or healthy once the providers are installed.
func (c *Component) Health(context.Context) component.Health {
	switch {
	case !c.cfg.Enabled:
		return component.Health{Name: c.Name(), Status: component.StatusDisabled}
	case c.tp == nil:
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    "OpenTelemetry",
		Type:    "observability",
		Details: fmt.Sprintf("otlp http %s sample=%.2f", c.cfg.Endpoint, c.cfg.SampleRate),
	}
}
