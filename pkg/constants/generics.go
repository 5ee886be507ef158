package constants

import "time"

// Global per-IP request budget applied by the router.
const (
	DefaultRateLimitRequests      = 100
	DefaultRateLimitWindowMinutes = 1
)

func DefaultRateLimitWindow() time.Duration {
	return DefaultRateLimitWindowMinutes * time.Minute
}

// Waitlist document addressing. Every subscription lands in this single document.
const (
	WaitlistCollection = "emails"
	WaitlistDocumentID = "emailsList"
)

const (
	// DefaultStatusMessageTTL is how long a submit result stays visible to its session.
	DefaultStatusMessageTTL = 5 * time.Second
	// DefaultSessionIdleTTL bounds how long an idle waitlist session is kept in memory.
	DefaultSessionIdleTTL = 30 * time.Minute
	// DefaultMaxSessions caps live waitlist sessions per registry.
	DefaultMaxSessions = 10000
)

// Waitlist store backends selectable through WAITLIST_STORE.
const (
	WaitlistStorePostgres = "postgres"
	WaitlistStoreMongo    = "mongo"
	WaitlistStoreRedis    = "redis"
	WaitlistStoreMemory   = "memory"
)
