// Package redis provides the cache client used by the HTTP layer to avoid
// recomputing analytics distributions on every request.
package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/gamotph/adr-intelligence/internal/config"
	"github.com/gamotph/adr-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/gamotph/adr-intelligence/pkg/errors"
)

// Client wraps the go-redis client with our config and logging.
type Client struct {
	rdb    redis.UniversalClient
	logger logging.Logger
}

// NewClient connects to the configured redis instance and verifies it with
// a ping.
func NewClient(cfg config.RedisConfig, log logging.Logger) (*Client, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, errors.Wrap(err, errors.CodeCacheError, "redis unreachable")
	}

	log.Info("connected to redis", logging.String("addr", cfg.Addr))
	return &Client{rdb: rdb, logger: log.Named("redis")}, nil
}

// NewClientWithRDB wraps an existing redis client; used by tests.
func NewClientWithRDB(rdb redis.UniversalClient, log logging.Logger) *Client {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Client{rdb: rdb, logger: log}
}

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, errors.CodeCacheError, "redis ping failed")
	}
	return nil
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}
