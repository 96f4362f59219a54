package demo

import (
	"fmt"
	"time"
)

// Config controls the demo endpoints.
type Config struct {
	Enabled bool `mapstructure:"enabled"`
	// StreamInterval is the tick period of GET /stream.
	StreamInterval string `mapstructure:"stream_interval"`
	// MaxDelay bounds the random per-name delay of the async pipelines.
	MaxDelay string `mapstructure:"max_delay"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.StreamInterval == "" {
		c.StreamInterval = "1s"
	}
	if c.MaxDelay == "" {
		c.MaxDelay = "1s"
	}
}

// Validate checks the durations.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if d, err := time.ParseDuration(c.StreamInterval); err != nil || d <= 0 {
		return fmt.Errorf("demo: invalid stream_interval %q", c.StreamInterval)
	}
	if d, err := time.ParseDuration(c.MaxDelay); err != nil || d < 0 {
		return fmt.Errorf("demo: invalid max_delay %q", c.MaxDelay)
	}
	return nil
}

// Interval returns the parsed stream interval.
func (c *Config) Interval() time.Duration {
	d, _ := time.ParseDuration(c.StreamInterval)
	return d
}

// Delay returns the parsed maximum delay.
func (c *Config) Delay() time.Duration {
	d, _ := time.ParseDuration(c.MaxDelay)
	return d
}
