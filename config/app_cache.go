package config

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/akeren/referrly/internal/log"
	pkgredis "github.com/akeren/referrly/pkg/redis"
	"github.com/akeren/referrly/pkg/utils"
	"github.com/go-redis/redis/v8"
)

var ErrCacheNotConfigured = errors.New("cache host is not configured (REDIS_HOST)")

// Cache is the shared Redis connection. It backs the redis waitlist store and
// the distributed rate limiter, and is probed by /health.
type Cache interface {
	Ping(ctx context.Context) error
	Close() error
	Client() *redis.Client
}

type CacheConfig struct {
	Host        string
	Port        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

func NewCacheConfig() *CacheConfig {
	return &CacheConfig{
		Host:        utils.GetEnvTrimmed("REDIS_HOST"),
		Port:        utils.GetEnvTrimmedOrDefault("REDIS_PORT", "6379"),
		Password:    GetValueFromEnvironmentVariable("REDIS_PASSWORD", ""),
		DB:          redisDBFromEnv(),
		DialTimeout: utils.GetEnvDurationOrDefault("REDIS_DIAL_TIMEOUT", 5*time.Second),
	}
}

func redisDBFromEnv() int {
	db, err := strconv.Atoi(utils.GetEnvTrimmedOrDefault("REDIS_DB", "0"))
	if err != nil || db < 0 {
		return 0
	}
	return db
}

func (cc *CacheConfig) IsConfigured() bool {
	return cc.Host != ""
}

// NewCache connects or fails. Used when Redis is the waitlist store.
func (cc *CacheConfig) NewCache(logger *log.Logger) (Cache, error) {
	if !cc.IsConfigured() {
		logger.Error("Redis configuration is missing", "key", "REDIS_HOST")
		return nil, ErrCacheNotConfigured
	}

	conn, err := pkgredis.Connect(context.Background(), &pkgredis.Config{
		Host:        cc.Host,
		Port:        cc.Port,
		Password:    cc.Password,
		DB:          cc.DB,
		DialTimeout: cc.DialTimeout,
	})
	if err != nil {
		logger.Error("Failed to connect to Redis", "error", err)
		return nil, err
	}

	logger.Info("Redis connected", "addr", conn.Addr(), "db", cc.DB)
	return conn, nil
}

// NewCacheOrNil connects when REDIS_HOST is set and swallows failures, leaving
// the rate limiter in-process.
func (cc *CacheConfig) NewCacheOrNil(logger *log.Logger) Cache {
	if !cc.IsConfigured() {
		logger.Info("Redis not configured; rate limiting stays in-process")
		return nil
	}

	cache, err := cc.NewCache(logger)
	if err != nil {
		return nil
	}
	return cache
}

func GetRedisClient(cache Cache) *redis.Client {
	if cache == nil {
		return nil
	}
	return cache.Client()
}

func CloseCache(cache Cache, logger *log.Logger) error {
	if cache == nil {
		return nil
	}

	if err := cache.Close(); err != nil {
		logger.Error("Failed to close Redis connection", "error", err)
		return err
	}

	logger.Info("Redis connection closed")
	return nil
}
