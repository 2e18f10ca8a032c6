// Package redis provides the optional response cache for the API gateway.
// The engine itself is pure compute; only merged analyse responses, which
// include classifier fan-out results, are worth caching.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/BiasLens-Intelligence/internal/infrastructure/monitoring/logging"
)

// Config holds the redis connection settings.
type Config struct {
	Addr         string        `mapstructure:"addr"`
	Username     string        `mapstructure:"username"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Client wraps the redis connection.
type Client struct {
	rdb    *redis.Client
	logger logging.Logger
}

// NewClient connects to redis and verifies the connection with a ping.
func NewClient(ctx context.Context, cfg Config, logger logging.Logger) (*Client, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	logger.Info("redis connected", logging.String("addr", cfg.Addr))
	return &Client{rdb: rdb, logger: logger.Named("redis")}, nil
}

// Ping checks liveness; the readiness endpoint calls it.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}
