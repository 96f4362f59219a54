package database

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/kbukum/fluxkit/component"
	"github.com/kbukum/fluxkit/database/migration"
	"github.com/kbukum/fluxkit/logger"
)

// Component wraps DB and implements component.Component for lifecycle management.
type Component struct {
	db             *DB
	cfg            Config
	log            *logger.Logger
	migrations     fs.FS
	migrationsPath string
	models         []any
}

// NewComponent creates a database component for use with the component registry.
func NewComponent(cfg Config, log *logger.Logger) *Component {
	cfg.ApplyDefaults()
	return &Component{cfg: cfg, log: log}
}

// WithMigrations sets the SQL migrations applied on Start when cfg.Migrate is on.
func (c *Component) WithMigrations(fsys fs.FS, path string) *Component {
	c.migrations = fsys
	c.migrationsPath = path
	return c
}

// WithAutoMigrate registers models for GORM auto-migration on Start.
func (c *Component) WithAutoMigrate(models ...any) *Component {
	c.models = append(c.models, models...)
	return c
}

// DB returns the underlying *DB, or nil if not started.
func (c *Component) DB() *DB {
	return c.db
}

var _ component.Component = (*Component)(nil)

// Name returns the component name.
func (c *Component) Name() string { return "database" }

// Start connects to the database and applies migrations.
func (c *Component) Start(ctx context.Context) error {
	if !c.cfg.Enabled {
		return nil
	}
	db, err := New(ctx, c.cfg, c.log)
	if err != nil {
		return fmt.Errorf("database start: %w", err)
	}
	c.db = db

	if c.cfg.Migrate && c.migrations != nil {
		if err := migration.Up(db.GormDB, c.migrations, c.migrationsPath, migration.SQLite); err != nil {
			return fmt.Errorf("database migrate: %w", err)
		}
		c.db.log.Info("Migrations applied", logger.Fields("path", c.migrationsPath))
	}
	if len(c.models) > 0 {
		if err := c.db.AutoMigrate(c.models...); err != nil {
			return fmt.Errorf("database auto-migrate: %w", err)
		}
	}
	return nil
}

// Stop gracefully closes the database connection.
func (c *Component) Stop(_ context.Context) error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Health returns the current health status of the database.
func (c *Component) Health(ctx context.Context) component.Health {
	switch {
	case !c.cfg.Enabled:
		return component.Health{Name: c.Name(), Status: component.StatusDisabled}
	case c.db == nil:
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "database not initialized"}
	}
	if err := c.db.PingContext(ctx); err != nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: fmt.Sprintf("ping failed: %v", err)}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe returns summary info for the startup log.
func (c *Component) Describe() component.Description {
	details := fmt.Sprintf("sqlite pool=%d/%d", c.cfg.MaxOpenConns, c.cfg.MaxIdleConns)
	if c.cfg.Migrate {
		details += " migrate=on"
	}
	return component.Description{Name: "Database", Type: "database", Details: details}
}
