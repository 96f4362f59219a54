package main

import (
	"fmt"

	"github.com/kbukum/fluxkit/config"
	"github.com/kbukum/fluxkit/database"
	"github.com/kbukum/fluxkit/demo"
	"github.com/kbukum/fluxkit/kafka"
	"github.com/kbukum/fluxkit/mongo"
	"github.com/kbukum/fluxkit/observability"
	"github.com/kbukum/fluxkit/redis"
	"github.com/kbukum/fluxkit/server"
	"github.com/kbukum/fluxkit/store"
)

// Config is the moviesinfo service configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Store         store.Config         `yaml:"store" mapstructure:"store"`
	Database      database.Config      `yaml:"database" mapstructure:"database"`
	Redis         redis.Config         `yaml:"redis" mapstructure:"redis"`
	Mongo         mongo.Config         `yaml:"mongo" mapstructure:"mongo"`
	Kafka         kafka.Config         `yaml:"kafka" mapstructure:"kafka"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
	Demo          demo.Config          `yaml:"demo" mapstructure:"demo"`
}

// ApplyDefaults fills every section and enables the backend the store
// driver names.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Store.ApplyDefaults()

	switch c.Store.Driver {
	case store.DriverSQLite:
		c.Database.Enabled = true
		c.Database.Migrate = true
	case store.DriverRedis:
		c.Redis.Enabled = true
	case store.DriverMongo:
		c.Mongo.Enabled = true
	}

	c.Database.ApplyDefaults()
	c.Redis.ApplyDefaults()
	c.Mongo.ApplyDefaults()
	c.Kafka.ApplyDefaults()
	c.Observability.ApplyDefaults()
	c.Demo.ApplyDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	sections := []struct {
		name string
		v    interface{ Validate() error }
	}{
		{"server", &c.Server},
		{"store", &c.Store},
		{"database", &c.Database},
		{"redis", &c.Redis},
		{"mongo", &c.Mongo},
		{"kafka", &c.Kafka},
		{"observability", &c.Observability},
		{"demo", &c.Demo},
	}
	for _, s := range sections {
		if err := s.v.Validate(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}
