package observability

import (
	"fmt"
	"time"
)

// Config enables and points the OTLP exporters.
type Config struct {
	Enabled        bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint       string  `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure       bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate     float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
	MetricInterval string  `yaml:"metric_interval" mapstructure:"metric_interval"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.MetricInterval == "" {
		c.MetricInterval = "15s"
	}
}

// Validate checks the configuration when enabled.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("observability.sample_rate must be within [0, 1] (got: %v)", c.SampleRate)
	}
	if _, err := time.ParseDuration(c.MetricInterval); err != nil {
		return fmt.Errorf("observability.metric_interval: %w", err)
	}
	return nil
}

// Tracer builds the tracer configuration for a service.
func (c Config) Tracer(serviceName, version, environment string) TracerConfig {
	return TracerConfig{
		ServiceName:    serviceName,
		ServiceVersion: version,
		Environment:    environment,
		Endpoint:       c.Endpoint,
		Insecure:       c.Insecure,
		SampleRate:     c.SampleRate,
	}
}

// Meter builds the meter configuration for a service.
func (c Config) Meter(serviceName, version, environment string) MeterConfig {
	interval, _ := time.ParseDuration(c.MetricInterval)
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: version,
		Environment:    environment,
		Endpoint:       c.Endpoint,
		Insecure:       c.Insecure,
		Interval:       interval,
	}
}
