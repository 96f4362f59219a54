package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/fluxkit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.WithComponent("observability").Info("Meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments recorded for traced streams and tasks.
// A nil *Metrics records nothing.
type Metrics struct {
	subscriptions metric.Int64Counter
	active        metric.Int64UpDownCounter
	values        metric.Int64Counter
	duration      metric.Float64Histogram
	errors        metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	subscriptions, err := meter.Int64Counter("flux.subscriptions",
		metric.WithDescription("Finished subscriptions by stream and terminal signal"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating flux.subscriptions counter: %w", err)
	}

	active, err := meter.Int64UpDownCounter("flux.subscriptions.active",
		metric.WithDescription("Number of running subscriptions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating flux.subscriptions.active gauge: %w", err)
	}

	values, err := meter.Int64Counter("flux.values",
		metric.WithDescription("Values emitted by stream"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating flux.values counter: %w", err)
	}

	duration, err := meter.Float64Histogram("flux.subscription.duration",
		metric.WithDescription("Duration of subscriptions in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating flux.subscription.duration histogram: %w", err)
	}

	errorTotal, err := meter.Int64Counter("flux.errors",
		metric.WithDescription("Failed subscriptions by stream and error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating flux.errors counter: %w", err)
	}

	return &Metrics{
		subscriptions: subscriptions,
		active:        active,
		values:        values,
		duration:      duration,
		errors:        errorTotal,
	}, nil
}

// RecordStart counts a subscription of stream as running.
func (m *Metrics) RecordStart(ctx context.Context, stream string) {
	if m == nil {
		return
	}
	m.active.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrStream, stream)))
}

// RecordValues adds n emitted values of stream.
func (m *Metrics) RecordValues(ctx context.Context, stream string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.values.Add(ctx, int64(n), metric.WithAttributes(attribute.String(AttrStream, stream)))
}

// RecordEnd records the terminal signal and duration of a subscription.
func (m *Metrics) RecordEnd(ctx context.Context, stream, signal string, d time.Duration) {
	if m == nil {
		return
	}
	streamAttr := attribute.String(AttrStream, stream)
	m.active.Add(ctx, -1, metric.WithAttributes(streamAttr))
	m.subscriptions.Add(ctx, 1, metric.WithAttributes(streamAttr, attribute.String(AttrSignal, signal)))
	m.duration.Record(ctx, d.Seconds(), metric.WithAttributes(streamAttr))
}

// RecordError counts a failure of stream with the given error code.
func (m *Metrics) RecordError(ctx context.Context, stream, code string) {
	if m == nil {
		return
	}
	m.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrStream, stream),
		attribute.String(AttrErrorCode, code),
	))
}
