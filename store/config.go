package store

import (
	"fmt"
	"slices"
)

// Driver names a storage backend.
type Driver string

const (
	DriverMemory Driver = "memory"
	DriverSQLite Driver = "sqlite"
	DriverRedis  Driver = "redis"
	DriverMongo  Driver = "mongo"
)

var drivers = []Driver{DriverMemory, DriverSQLite, DriverRedis, DriverMongo}

// Config selects the storage backend.
type Config struct {
	Driver Driver `yaml:"driver" mapstructure:"driver"`
}

// ApplyDefaults sets the memory driver when none is configured.
func (c *Config) ApplyDefaults() {
	if c.Driver == "" {
		c.Driver = DriverMemory
	}
}

// Validate checks that the driver is known.
func (c *Config) Validate() error {
	if !slices.Contains(drivers, c.Driver) {
		return fmt.Errorf("store.driver must be one of %v (got: %s)", drivers, c.Driver)
	}
	return nil
}
