package waitlist

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/akeren/referrly/config/router"
	"github.com/akeren/referrly/internal/log"
	"github.com/akeren/referrly/pkg/circuitbreaker"
	"github.com/akeren/referrly/pkg/constants"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// StoreDependencies carries the clients a backend may need. Only the one
// matching Backend has to be set.
type StoreDependencies struct {
	Backend string
	DB      *gorm.DB
	Redis   *redis.Client
	Mongo   *mongo.Database
	Breaker *circuitbreaker.Config
}

// NewWaitlistStore builds the configured backend behind a circuit breaker.
func NewWaitlistStore(deps StoreDependencies) (WaitlistStore, error) {
	var store WaitlistStore

	backend := strings.ToLower(strings.TrimSpace(deps.Backend))
	if backend == "" {
		backend = constants.WaitlistStorePostgres
	}

	switch backend {
	case constants.WaitlistStorePostgres:
		if deps.DB == nil {
			return nil, fmt.Errorf("waitlist store %q requires a database connection", backend)
		}
		store = NewGormWaitlistStore(deps.DB, nil)
	case constants.WaitlistStoreRedis:
		if deps.Redis == nil {
			return nil, fmt.Errorf("waitlist store %q requires a redis client", backend)
		}
		store = NewRedisWaitlistStore(deps.Redis)
	case constants.WaitlistStoreMongo:
		if deps.Mongo == nil {
			return nil, fmt.Errorf("waitlist store %q requires a mongo database", backend)
		}
		store = NewMongoWaitlistStore(deps.Mongo)
	case constants.WaitlistStoreMemory:
		store = NewMemoryWaitlistStore()
	default:
		return nil, fmt.Errorf("unknown waitlist store %q", deps.Backend)
	}

	return NewGuardedWaitlistStore(store, circuitbreaker.NewCircuitBreaker(deps.Breaker)), nil
}

type Options struct {
	Ref            DocumentRef
	MessageTTL     time.Duration
	SessionIdleTTL time.Duration
	MaxSessions    int
	Metrics        prometheus.Registerer
}

func (o Options) withDefaults() Options {
	if o.Ref.Collection == "" {
		o.Ref.Collection = constants.WaitlistCollection
	}
	if o.Ref.ID == "" {
		o.Ref.ID = constants.WaitlistDocumentID
	}
	if o.MessageTTL <= 0 {
		o.MessageTTL = constants.DefaultStatusMessageTTL
	}
	if o.SessionIdleTTL <= 0 {
		o.SessionIdleTTL = constants.DefaultSessionIdleTTL
	}
	if o.MaxSessions <= 0 {
		o.MaxSessions = constants.DefaultMaxSessions
	}
	return o
}

type WaitlistServiceFactory interface {
	CreateService() WaitlistService
	CreateSessionRegistry() *SessionRegistry
	CreateController() *router.RESTController
	Close()
}

type DefaultWaitlistServiceFactory struct {
	store   WaitlistStore
	logger  *log.Logger
	options Options

	serviceOnce sync.Once
	service     WaitlistService

	mu       sync.Mutex
	sessions []*SessionRegistry
}

func NewWaitlistServiceFactory(store WaitlistStore, logger *log.Logger, options Options) WaitlistServiceFactory {
	return &DefaultWaitlistServiceFactory{
		store:   store,
		logger:  logger,
		options: options.withDefaults(),
	}
}

// CreateService returns the shared service; its metrics are registered once.
func (f *DefaultWaitlistServiceFactory) CreateService() WaitlistService {
	f.serviceOnce.Do(func() {
		recorder := NewOutcomeRecorder(f.options.Metrics)
		f.service = NewWaitlistService(f.logger, f.store, f.options.Ref, recorder)
	})
	return f.service
}

func (f *DefaultWaitlistServiceFactory) CreateSessionRegistry() *SessionRegistry {
	service := f.CreateService()
	ttl := f.options.MessageTTL

	registry := NewSessionRegistry(f.options.SessionIdleTTL, f.options.MaxSessions, func() *Form {
		return NewForm(service, NewStatusMessage(ttl, nil))
	})

	f.mu.Lock()
	f.sessions = append(f.sessions, registry)
	f.mu.Unlock()

	return registry
}

func (f *DefaultWaitlistServiceFactory) CreateController() *router.RESTController {
	return NewWaitlistController(f.CreateService(), f.CreateSessionRegistry())
}

// Close stops every pending status timer of every registry handed out.
func (f *DefaultWaitlistServiceFactory) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, registry := range f.sessions {
		registry.Close()
	}
	f.sessions = nil
}
