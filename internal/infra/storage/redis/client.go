// Package redis implements the relay's cache ports on top of a Redis
// connection.
package redis

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"
)

type client struct {
	conn *redis.Client

	gasPriceTTL time.Duration
}

// Option configures the client.
type Option func(*client)

// WithGasPriceTTL sets how long a cached gas price stays live.
// Default: 1 hour.
func WithGasPriceTTL(d time.Duration) Option {
	return func(c *client) {
		c.gasPriceTTL = d
	}
}

func (c *client) Close() error {
	return c.conn.Close()
}

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(ctx context.Context, addr, username, password string, db int, opts ...Option) (*client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       db,
	})

	if err := conn.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	c := &client{
		conn:        conn,
		gasPriceTTL: time.Hour,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}
