package redis

import (
	"context"
	"time"

	"github.com/joaquinbejar/OrderBookEngine/pkg/errors"
	"github.com/joaquinbejar/OrderBookEngine/pkg/logger"
	"github.com/redis/go-redis/v9"
)

type client struct {
	logger *logger.Logger
	config *Config
	rdb    *redis.Client
}

// NewClient creates a new Redis client with the provided logger and configuration.
func NewClient(logger *logger.Logger, config *Config) Client {
	return &client{
		logger: logger,
		config: config,
	}
}

func (c *client) Connect(ctx context.Context) error {
	if c.config == nil {
		return errors.NewTracer("redis config is nil")
	}
	if len(c.config.Addrs) == 0 {
		return errors.NewTracer("redis addresses are empty")
	}

	c.rdb = redis.NewClient(&redis.Options{
		Addr:            c.config.Addrs[0],
		Username:        c.config.Username,
		Password:        c.config.Password,
		DB:              c.config.DB,
		MaxRetries:      c.config.MaxRetries,
		MinRetryBackoff: c.config.MinRetryBackoff,
		MaxRetryBackoff: c.config.MaxRetryBackoff,
		DialTimeout:     c.config.ConnectTimeout,
		ReadTimeout:     c.config.ConnectTimeout,
		WriteTimeout:    c.config.ConnectTimeout,
		PoolSize:        c.config.PoolSize,
		PoolTimeout:     c.config.PoolTimeout,
	})

	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return errors.NewTracer("failed to connect to redis").Wrap(err)
	}
	return nil
}

func (c *client) Disconnect() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func (c *client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return errors.NewTracer("failed to ping redis").Wrap(err)
	}
	return nil
}

func (c *client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", errors.NewTracer("failed to get value from redis").Wrap(err)
	}
	return val, nil
}

func (c *client) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	if err := c.rdb.Set(ctx, key, value, expiration).Err(); err != nil {
		return errors.NewTracer("failed to set value in redis").Wrap(err)
	}
	return nil
}

func (c *client) Publish(ctx context.Context, channel string, message any) error {
	if err := c.rdb.Publish(ctx, channel, message).Err(); err != nil {
		return errors.NewTracer("failed to publish message to redis").Wrap(err)
	}
	return nil
}
