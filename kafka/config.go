package kafka

import (
	"fmt"
	"slices"
	"time"
)

// Config holds Kafka connection and behavior configuration.
type Config struct {
	// Enabled controls whether the Kafka component is active.
	Enabled bool `mapstructure:"enabled"`

	// Brokers is the list of Kafka broker addresses.
	Brokers []string `mapstructure:"brokers"`

	// Topic receives the published events.
	Topic string `mapstructure:"topic"`

	// Source is written into every event's source attribute.
	Source string `mapstructure:"source"`

	// TLS
	EnableTLS     bool   `mapstructure:"enable_tls"`
	TLSSkipVerify bool   `mapstructure:"tls_skip_verify"`
	TLSCAFile     string `mapstructure:"tls_ca_file"`
	TLSCertFile   string `mapstructure:"tls_cert_file"`
	TLSKeyFile    string `mapstructure:"tls_key_file"`

	// SASL
	EnableSASL    bool   `mapstructure:"enable_sasl"`
	SASLMechanism string `mapstructure:"sasl_mechanism"` // PLAIN, SCRAM-SHA-256, SCRAM-SHA-512
	Username      string `mapstructure:"username"`
	Password      string `mapstructure:"password"`

	// Producer settings
	Compression  string `mapstructure:"compression"` // none, gzip, snappy, lz4, zstd
	Retries      int    `mapstructure:"retries"`
	RetryBackoff string `mapstructure:"retry_backoff"`
	BatchSize    int    `mapstructure:"batch_size"`
	BatchTimeout string `mapstructure:"batch_timeout"`
	WriteTimeout string `mapstructure:"write_timeout"`
	RequiredAcks int    `mapstructure:"required_acks"`

	// Publishing fails fast for BreakerTimeout after BreakerFailures
	// consecutive failed writes.
	BreakerFailures int    `mapstructure:"breaker_failures"`
	BreakerTimeout  string `mapstructure:"breaker_timeout"`

	// Consumer settings
	StartOffset string `mapstructure:"start_offset"` // first, last
	MaxWait     string `mapstructure:"max_wait"`

	// Connection settings
	DialTimeout string `mapstructure:"dial_timeout"`
	IdleTimeout string `mapstructure:"idle_timeout"`
	MetadataTTL string `mapstructure:"metadata_ttl"`
}

var (
	compressions = []string{"none", "gzip", "snappy", "lz4", "zstd"}
	offsets      = []string{"first", "last"}
)

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if len(c.Brokers) == 0 {
		c.Brokers = []string{"localhost:9092"}
	}
	if c.Topic == "" {
		c.Topic = "movieinfo-events"
	}
	if c.Source == "" {
		c.Source = "moviesinfo"
	}
	if c.Compression == "" {
		c.Compression = "snappy"
	}
	if c.Retries <= 0 {
		c.Retries = 3
	}
	if c.RetryBackoff == "" {
		c.RetryBackoff = "100ms"
	}
	if c.BreakerFailures <= 0 {
		c.BreakerFailures = 5
	}
	if c.BreakerTimeout == "" {
		c.BreakerTimeout = "30s"
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 1
	}
	if c.BatchTimeout == "" {
		c.BatchTimeout = "10ms"
	}
	if c.WriteTimeout == "" {
		c.WriteTimeout = "10s"
	}
	if c.RequiredAcks == 0 {
		c.RequiredAcks = -1 // all replicas
	}
	if c.StartOffset == "" {
		c.StartOffset = "last"
	}
	if c.MaxWait == "" {
		c.MaxWait = "500ms"
	}
	if c.DialTimeout == "" {
		c.DialTimeout = "10s"
	}
	if c.IdleTimeout == "" {
		c.IdleTimeout = "30s"
	}
	if c.MetadataTTL == "" {
		c.MetadataTTL = "6s"
	}
	if c.SASLMechanism == "" && c.EnableSASL {
		c.SASLMechanism = "PLAIN"
	}
}

// Validate checks that required fields are present and parseable.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if len(c.Brokers) == 0 {
		return fmt.Errorf("kafka brokers are required")
	}
	if c.Topic == "" {
		return fmt.Errorf("kafka topic is required")
	}
	for _, d := range []struct {
		name, val string
	}{
		{"batch_timeout", c.BatchTimeout},
		{"write_timeout", c.WriteTimeout},
		{"retry_backoff", c.RetryBackoff},
		{"breaker_timeout", c.BreakerTimeout},
		{"max_wait", c.MaxWait},
		{"dial_timeout", c.DialTimeout},
		{"idle_timeout", c.IdleTimeout},
		{"metadata_ttl", c.MetadataTTL},
	} {
		if _, err := time.ParseDuration(d.val); err != nil {
			return fmt.Errorf("invalid %s %q: %w", d.name, d.val, err)
		}
	}
	if !slices.Contains(compressions, c.Compression) {
		return fmt.Errorf("compression must be one of %v (got: %s)", compressions, c.Compression)
	}
	if !slices.Contains(offsets, c.StartOffset) {
		return fmt.Errorf("start_offset must be one of %v (got: %s)", offsets, c.StartOffset)
	}
	if c.EnableSASL {
		switch c.SASLMechanism {
		case "PLAIN", "SCRAM-SHA-256", "SCRAM-SHA-512":
		default:
			return fmt.Errorf("unsupported SASL mechanism: %s", c.SASLMechanism)
		}
		if c.Username == "" {
			return fmt.Errorf("SASL username is required")
		}
	}
	if c.Retries <= 0 {
		return fmt.Errorf("retries must be > 0")
	}
	return nil
}

// ParseDuration parses a duration string, returning zero on empty input.
func ParseDuration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}
