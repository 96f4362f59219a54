package mongo

import (
	"fmt"
	"strings"
	"time"
)

// Config holds MongoDB connection configuration.
type Config struct {
	// Enabled controls whether the MongoDB component is active.
	Enabled bool `mapstructure:"enabled"`

	// URI is the connection string, e.g. "mongodb://localhost:27017".
	URI string `mapstructure:"uri"`

	// Database is the database holding the collections.
	Database string `mapstructure:"database"`

	// ConnectTimeout bounds the initial connection and ping (e.g. "10s").
	ConnectTimeout string `mapstructure:"connect_timeout"`

	// MaxPoolSize is the maximum number of connections per server.
	MaxPoolSize uint64 `mapstructure:"max_pool_size"`

	// BatchSize is the number of documents fetched per cursor batch.
	BatchSize int32 `mapstructure:"batch_size"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.URI == "" {
		c.URI = "mongodb://localhost:27017"
	}
	if c.Database == "" {
		c.Database = "local"
	}
	if c.ConnectTimeout == "" {
		c.ConnectTimeout = "10s"
	}
	if c.MaxPoolSize == 0 {
		c.MaxPoolSize = 100
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 101
	}
}

// Validate checks that required fields are present and parseable.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if !strings.HasPrefix(c.URI, "mongodb://") && !strings.HasPrefix(c.URI, "mongodb+srv://") {
		return fmt.Errorf("mongo uri must start with mongodb:// or mongodb+srv:// (got: %q)", c.URI)
	}
	if c.Database == "" {
		return fmt.Errorf("mongo database is required")
	}
	if _, err := time.ParseDuration(c.ConnectTimeout); err != nil {
		return fmt.Errorf("invalid connect_timeout %q: %w", c.ConnectTimeout, err)
	}
	return nil
}
