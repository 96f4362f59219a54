package mongo

import (
	"context"
	"fmt"

	"github.com/kbukum/fluxkit/component"
	"github.com/kbukum/fluxkit/logger"
	"github.com/kbukum/fluxkit/util"
)

// Component wraps Client and implements component.Component.
type Component struct {
	client *Client
	cfg    Config
	log    *logger.Logger
}

// NewComponent creates a MongoDB component for use with the component registry.
func NewComponent(cfg Config, log *logger.Logger) *Component {
	cfg.ApplyDefaults()
	return &Component{cfg: cfg, log: log}
}

// Client returns the underlying *Client, or nil if not started.
func (c *Component) Client() *Client {
	return c.client
}

var _ component.Component = (*Component)(nil)

func (c *Component) Name() string { return "mongo" }

func (c *Component) Start(ctx context.Context) error {
	if !c.cfg.Enabled {
		return nil
	}
	client, err := New(ctx, c.cfg, c.log)
	if err != nil {
		return fmt.Errorf("mongo start: %w", err)
	}
	c.client = client
	return nil
}

func (c *Component) Stop(ctx context.Context) error {
	return c.client.Close(ctx)
}

func (c *Component) Health(ctx context.Context) component.Health {
	switch {
	case !c.cfg.Enabled:
		return component.Health{Name: c.Name(), Status: component.StatusDisabled}
	case c.client == nil:
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "mongo not initialized"}
	}
	if err := c.client.Ping(ctx); err != nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: err.Error()}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    "MongoDB",
		Type:    "mongo",
		Details: fmt.Sprintf("%s db=%s", util.RedactURI(c.cfg.URI), c.cfg.Database),
	}
}
