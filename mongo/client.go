package mongo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/kbukum/fluxkit/logger"
	"github.com/kbukum/fluxkit/util"
)

// Client wraps a mongo.Client bound to one database.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
	log    *logger.Logger
	cfg    Config
	closed bool
	mu     sync.Mutex
}

// New connects to MongoDB and verifies the connection with a ping.
func New(ctx context.Context, cfg Config, log *logger.Logger) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("mongo config: %w", err)
	}

	timeout, _ := time.ParseDuration(cfg.ConnectTimeout)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetConnectTimeout(timeout)

	mc, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := mc.Ping(ctx, readpref.Primary()); err != nil {
		_ = mc.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	log = log.WithComponent("mongo")
	log.Info("MongoDB connection established", logger.Fields("uri", util.RedactURI(cfg.URI), "database", cfg.Database))
	return &Client{client: mc, db: mc.Database(cfg.Database), log: log, cfg: cfg}, nil
}

// Collection returns the named collection of the configured database.
func (c *Client) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

// Ping verifies the connection is alive.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client. Safe to call multiple times.
func (c *Client) Close(ctx context.Context) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.log.Info("Closing MongoDB connection")
	c.closed = true
	return c.client.Disconnect(ctx)
}
