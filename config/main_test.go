package config

import (
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/akeren/referrly/internal/log"
	"github.com/akeren/referrly/pkg/constants"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"RATE_LIMIT_REQUESTS", "RATE_LIMIT_WINDOW", "REQUEST_TIMEOUT",
		"WAITLIST_STORE", "WAITLIST_COLLECTION", "WAITLIST_DOCUMENT_ID",
		"WAITLIST_MESSAGE_TTL", "WAITLIST_SESSION_IDLE_TTL",
	} {
		t.Setenv(key, "")
	}

	cfg := NewAppConfig()

	assert.Equal(t, constants.DefaultRateLimitRequests, cfg.RateLimitRequests)
	assert.Equal(t, constants.DefaultRateLimitWindow(), cfg.RateLimitWindow)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, WaitlistConfig{
		Store:          constants.WaitlistStorePostgres,
		Collection:     constants.WaitlistCollection,
		DocumentID:     constants.WaitlistDocumentID,
		MessageTTL:     constants.DefaultStatusMessageTTL,
		SessionIdleTTL: constants.DefaultSessionIdleTTL,
		MaxSessions:    constants.DefaultMaxSessions,
	}, cfg.Waitlist)
	assert.True(t, cfg.Waitlist.NeedsDatabase())
}

func TestNewAppConfig_FromEnvironment(t *testing.T) {
	t.Setenv("RATE_LIMIT_REQUESTS", "25")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("WAITLIST_STORE", " Redis ")
	t.Setenv("WAITLIST_COLLECTION", "beta")
	t.Setenv("WAITLIST_DOCUMENT_ID", "signups")
	t.Setenv("WAITLIST_MESSAGE_TTL", "2s")
	t.Setenv("WAITLIST_SESSION_IDLE_TTL", "not-a-duration")
	t.Setenv("WAITLIST_MAX_SESSIONS", "500")

	cfg := NewAppConfig()

	assert.Equal(t, 25, cfg.RateLimitRequests)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
	assert.Equal(t, constants.WaitlistStoreRedis, cfg.Waitlist.Store)
	assert.Equal(t, "beta", cfg.Waitlist.Collection)
	assert.Equal(t, "signups", cfg.Waitlist.DocumentID)
	assert.Equal(t, 2*time.Second, cfg.Waitlist.MessageTTL)
	assert.Equal(t, constants.DefaultSessionIdleTTL, cfg.Waitlist.SessionIdleTTL)
	assert.Equal(t, 500, cfg.Waitlist.MaxSessions)
	assert.False(t, cfg.Waitlist.NeedsDatabase())
}

func TestWaitlistConfig_Validate(t *testing.T) {
	for _, store := range []string{"postgres", "redis", "mongo", "memory"} {
		assert.NoError(t, WaitlistConfig{Store: store}.Validate(), store)
	}

	err := WaitlistConfig{Store: "dynamo"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dynamo")
}

func TestApplicationConfig_CleanupRunsHooksInReverse(t *testing.T) {
	var order []int
	ac := &ApplicationConfig{Logger: newTestLogger()}
	ac.OnCleanup(func() { order = append(order, 1) })
	ac.OnCleanup(func() { order = append(order, 2) })

	ac.Cleanup()
	ac.Cleanup()

	assert.Equal(t, []int{2, 1}, order)
}

func TestCacheConfig_RedisDB(t *testing.T) {
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_DB", "3")
	assert.Equal(t, 3, NewCacheConfig().DB)

	t.Setenv("REDIS_DB", "-1")
	assert.Equal(t, 0, NewCacheConfig().DB)
}

func TestCacheConfig_NewCacheOrNil(t *testing.T) {
	t.Setenv("REDIS_HOST", "")
	assert.Nil(t, NewCacheConfig().NewCacheOrNil(newTestLogger()))
	assert.Nil(t, GetRedisClient(nil))

	_, err := NewCacheConfig().NewCache(newTestLogger())
	assert.ErrorIs(t, err, ErrCacheNotConfigured)

	mr := miniredis.RunT(t)
	host, port, _ := net.SplitHostPort(mr.Addr())
	t.Setenv("REDIS_HOST", host)
	t.Setenv("REDIS_PORT", port)

	cache := NewCacheConfig().NewCacheOrNil(newTestLogger())
	require.NotNil(t, cache)
	assert.NotNil(t, GetRedisClient(cache))
	assert.NoError(t, CloseCache(cache, newTestLogger()))

	mr.Close()
	assert.Nil(t, NewCacheConfig().NewCacheOrNil(newTestLogger()))
}

func TestDocStoreConfig_Defaults(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("MONGO_DATABASE", "")

	cfg := NewDocStoreConfig()

	assert.False(t, cfg.IsConfigured())
	assert.Equal(t, "referrly", cfg.Database)

	_, _, err := cfg.Connect(newTestLogger())
	assert.Error(t, err)
}

func newTestLogger() *log.Logger {
	return &log.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}
