package redis

import (
	"context"
	"time"
)

// Client defines the Redis operations the depth cache needs.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=redis_mock
type Client interface {
	Connect(ctx context.Context) error
	Disconnect() error
	Ping(ctx context.Context) error

	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Publish(ctx context.Context, channel string, message any) error
}
