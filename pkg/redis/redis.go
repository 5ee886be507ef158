package redis

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	goredis "github.com/go-redis/redis/v8"
)

var ErrHostRequired = errors.New("redis host is required")

type Config struct {
	Host     string
	Port     string
	Password string
	DB       int

	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func (c *Config) options() *goredis.Options {
	return &goredis.Options{
		Addr:         c.Addr(),
		Password:     c.Password,
		DB:           c.DB,
		DialTimeout:  durationOr(c.DialTimeout, 5*time.Second),
		ReadTimeout:  durationOr(c.ReadTimeout, 3*time.Second),
		WriteTimeout: durationOr(c.WriteTimeout, 3*time.Second),
	}
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}

// Connection owns one go-redis client shared by the waitlist store and the
// rate limiter.
type Connection struct {
	client *goredis.Client
	addr   string
}

// Connect dials Redis and verifies the connection with a PING before returning.
func Connect(ctx context.Context, cfg *Config) (*Connection, error) {
	if cfg == nil || cfg.Host == "" {
		return nil, ErrHostRequired
	}

	client := goredis.NewClient(cfg.options())

	pingCtx, cancel := context.WithTimeout(ctx, durationOr(cfg.DialTimeout, 5*time.Second))
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr(), err)
	}

	return &Connection{client: client, addr: cfg.Addr()}, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Connection) Close() error {
	return c.client.Close()
}

func (c *Connection) Client() *goredis.Client {
	return c.client
}

func (c *Connection) Addr() string {
	return c.addr
}
