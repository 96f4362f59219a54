package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kbukum/fluxkit/logger"
)

// ErrNotFound is returned by HGet when the field does not exist.
var ErrNotFound = goredis.Nil

// Client wraps a go-redis client with structured logging.
type Client struct {
	rdb    *goredis.Client
	log    *logger.Logger
	cfg    Config
	closed bool
	mu     sync.Mutex
}

// New creates a new Redis client with the given configuration and logger.
func New(cfg Config, log *logger.Logger) (*Client, error) {
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("redis config: %w", err)
	}
	if !cfg.Enabled {
		return nil, fmt.Errorf("redis is disabled")
	}

	dialTimeout, _ := time.ParseDuration(cfg.DialTimeout)
	readTimeout, _ := time.ParseDuration(cfg.ReadTimeout)
	writeTimeout, _ := time.ParseDuration(cfg.WriteTimeout)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  dialTimeout,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	})

	log = log.WithComponent("redis")
	log.Info("Redis client created", logger.Fields("addr", cfg.Addr, "db", cfg.DB, "pool_size", cfg.PoolSize))

	return &Client{rdb: rdb, log: log, cfg: cfg}, nil
}

// Ping verifies the Redis connection is alive.
func (c *Client) Ping(ctx context.Context) error {
	pong, err := c.rdb.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	if pong != "PONG" {
		return fmt.Errorf("unexpected redis ping response: %s", pong)
	}
	return nil
}

// HSet stores value under field of the hash at key.
func (c *Client) HSet(ctx context.Context, key, field string, value []byte) error {
	return c.rdb.HSet(ctx, key, field, value).Err()
}

// HGet reads a field of the hash at key. A missing field returns ErrNotFound.
func (c *Client) HGet(ctx context.Context, key, field string) ([]byte, error) {
	return c.rdb.HGet(ctx, key, field).Bytes()
}

// HDel removes fields of the hash at key.
func (c *Client) HDel(ctx context.Context, key string, fields ...string) error {
	return c.rdb.HDel(ctx, key, fields...).Err()
}

// HScan starts an incremental scan of the hash at key. The iterator yields
// field and value alternately.
func (c *Client) HScan(ctx context.Context, key string) (*goredis.ScanIterator, error) {
	cmd := c.rdb.HScan(ctx, key, 0, "", c.cfg.ScanCount)
	if err := cmd.Err(); err != nil {
		return nil, err
	}
	return cmd.Iterator(), nil
}

// IsNotFound reports whether err is a missing key or field.
func IsNotFound(err error) bool {
	return errors.Is(err, goredis.Nil)
}

// Close closes the Redis connection. Safe to call multiple times.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.log.Info("Closing Redis connection")
	c.closed = true
	return c.rdb.Close()
}
