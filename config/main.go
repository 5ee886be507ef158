package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/akeren/referrly/config/router"
	"github.com/akeren/referrly/internal/log"
	"github.com/akeren/referrly/internal/models"
	"github.com/akeren/referrly/pkg/constants"
	"github.com/akeren/referrly/pkg/utils"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

type ApplicationConfig struct {
	DB              *gorm.DB
	DocStoreClient  *mongo.Client
	DocStore        *mongo.Database
	RouterService   *router.RouterService
	Logger          *log.Logger
	Cache           Cache
	Config          *AppConfig
	TracingShutdown func(context.Context) error

	cleanups []func()
}

type AppConfig struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RequestTimeout    time.Duration

	Waitlist WaitlistConfig
}

// WaitlistConfig selects the store backend and addresses the subscriber document.
type WaitlistConfig struct {
	Store          string
	Collection     string
	DocumentID     string
	MessageTTL     time.Duration
	SessionIdleTTL time.Duration
	MaxSessions    int
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		RateLimitRequests: utils.GetEnvPositiveIntOrDefault("RATE_LIMIT_REQUESTS", constants.DefaultRateLimitRequests),
		RateLimitWindow:   utils.GetEnvDurationOrDefault("RATE_LIMIT_WINDOW", constants.DefaultRateLimitWindow()),
		RequestTimeout:    utils.GetEnvDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		Waitlist:          NewWaitlistConfig(),
	}
}

func NewWaitlistConfig() WaitlistConfig {
	return WaitlistConfig{
		Store:          strings.ToLower(utils.GetEnvTrimmedOrDefault("WAITLIST_STORE", constants.WaitlistStorePostgres)),
		Collection:     utils.GetEnvTrimmedOrDefault("WAITLIST_COLLECTION", constants.WaitlistCollection),
		DocumentID:     utils.GetEnvTrimmedOrDefault("WAITLIST_DOCUMENT_ID", constants.WaitlistDocumentID),
		MessageTTL:     utils.GetEnvDurationOrDefault("WAITLIST_MESSAGE_TTL", constants.DefaultStatusMessageTTL),
		SessionIdleTTL: utils.GetEnvDurationOrDefault("WAITLIST_SESSION_IDLE_TTL", constants.DefaultSessionIdleTTL),
		MaxSessions:    utils.GetEnvPositiveIntOrDefault("WAITLIST_MAX_SESSIONS", constants.DefaultMaxSessions),
	}
}

func (wc WaitlistConfig) Validate() error {
	switch wc.Store {
	case constants.WaitlistStorePostgres, constants.WaitlistStoreRedis, constants.WaitlistStoreMongo, constants.WaitlistStoreMemory:
		return nil
	default:
		return fmt.Errorf("unsupported WAITLIST_STORE %q (allowed: postgres, redis, mongo, memory)", wc.Store)
	}
}

// NeedsDatabase reports whether the relational database must be connected.
func (wc WaitlistConfig) NeedsDatabase() bool {
	return wc.Store == constants.WaitlistStorePostgres
}

// OnCleanup registers fn to run during Cleanup, before connections are closed.
func (ac *ApplicationConfig) OnCleanup(fn func()) {
	ac.cleanups = append(ac.cleanups, fn)
}

func (ac *ApplicationConfig) Cleanup() {
	for i := len(ac.cleanups) - 1; i >= 0; i-- {
		ac.cleanups[i]()
	}
	ac.cleanups = nil

	if ac.TracingShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ac.TracingShutdown(ctx); err != nil {
			ac.Logger.Error("Failed to shutdown tracer provider", "error", err)
		}
	}

	if ac.DB != nil {
		CloseDatabase(ac.DB, ac.Logger)
	}

	if ac.DocStoreClient != nil {
		CloseDocStore(ac.DocStoreClient, ac.Logger)
	}

	if ac.RouterService != nil {
		ac.RouterService.Cleanup()
	}

	if ac.Cache != nil {
		CloseCache(ac.Cache, ac.Logger)
	}

	ac.Logger.Info("Application cleanup completed")
}

func LoadApplicationConfiguration(logger *log.Logger, autoMigrate bool) (*ApplicationConfig, error) {
	InitializeEnvFile(logger)

	appConfig := NewAppConfig()
	if err := appConfig.Waitlist.Validate(); err != nil {
		return nil, err
	}
	if IsProduction() && appConfig.Waitlist.Store == constants.WaitlistStoreMemory {
		logger.Warn("WAITLIST_STORE=memory in production; subscriptions are lost on restart")
	}

	if autoMigrate {
		appEnv := GetAppEnv()
		if err := ValidateAutoMigrateAllowed(appEnv); err != nil {
			return nil, err
		}
		if appEnv == "" {
			logger.Warn("APP_ENV not set; allowing --auto-migrate as development")
		}
	}

	tracingShutdown, err := SetupTracing(logger)
	if err != nil {
		return nil, err
	}

	ac := &ApplicationConfig{
		Logger:          logger,
		Config:          appConfig,
		TracingShutdown: tracingShutdown,
	}

	if err := ac.connectStores(logger, autoMigrate); err != nil {
		ac.Cleanup()
		return nil, err
	}

	ac.RouterService = router.CreateRouterService(logger, GetRedisClient(ac.Cache), &router.RouterConfig{
		RateLimitRequests: appConfig.RateLimitRequests,
		RateLimitWindow:   appConfig.RateLimitWindow,
		RequestTimeout:    appConfig.RequestTimeout,
	})

	logger.Info("Application configuration loaded successfully", "waitlist_store", appConfig.Waitlist.Store)

	return ac, nil
}

func (ac *ApplicationConfig) connectStores(logger *log.Logger, autoMigrate bool) error {
	waitlistConfig := ac.Config.Waitlist

	if waitlistConfig.NeedsDatabase() {
		db, err := NewDatabase(logger, NewDBConfigFromEnv())
		if err != nil {
			return err
		}
		ac.DB = db

		if autoMigrate {
			if err := AutoMigrate(logger, db, models.ModelRegistry...); err != nil {
				return err
			}
		}
	} else if autoMigrate {
		logger.Warn("--auto-migrate ignored; waitlist store does not use the relational database", "store", waitlistConfig.Store)
	}

	cacheConfig := NewCacheConfig()
	if waitlistConfig.Store == constants.WaitlistStoreRedis {
		cache, err := cacheConfig.NewCache(logger)
		if err != nil {
			return err
		}
		ac.Cache = cache
	} else {
		ac.Cache = cacheConfig.NewCacheOrNil(logger)
	}

	if waitlistConfig.Store == constants.WaitlistStoreMongo {
		client, database, err := NewDocStoreConfig().Connect(logger)
		if err != nil {
			return err
		}
		ac.DocStoreClient = client
		ac.DocStore = database
	}

	return nil
}

// LoadStoreConfiguration connects only the stores the waitlist backend needs.
// Used by the CLI, which serves no HTTP traffic.
func LoadStoreConfiguration(logger *log.Logger) (*ApplicationConfig, error) {
	InitializeEnvFile(logger)

	appConfig := NewAppConfig()
	if err := appConfig.Waitlist.Validate(); err != nil {
		return nil, err
	}

	ac := &ApplicationConfig{Logger: logger, Config: appConfig}
	if err := ac.connectStores(logger, false); err != nil {
		ac.Cleanup()
		return nil, err
	}

	return ac, nil
}
