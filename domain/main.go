package domain

import (
	"github.com/akeren/referrly/config"
	"github.com/akeren/referrly/domain/monitoring"
	"github.com/akeren/referrly/domain/showcase"
	"github.com/akeren/referrly/domain/waitlist"
	"github.com/akeren/referrly/pkg/circuitbreaker"
)

// NewWaitlistStore builds the store selected by WAITLIST_STORE from the connections in appConfig.
func NewWaitlistStore(appConfig *config.ApplicationConfig) (waitlist.WaitlistStore, error) {
	backend := appConfig.Config.Waitlist.Store
	logger := appConfig.Logger

	breaker := circuitbreaker.DefaultConfig()
	breaker.OnStateChange = func(from, to circuitbreaker.CircuitState) {
		if to == circuitbreaker.Open {
			logger.Error("Waitlist store circuit opened", "backend", backend, "from", from.String())
			return
		}
		logger.Info("Waitlist store circuit state changed", "backend", backend, "from", from.String(), "to", to.String())
	}

	return waitlist.NewWaitlistStore(waitlist.StoreDependencies{
		Backend: backend,
		DB:      appConfig.DB,
		Redis:   config.GetRedisClient(appConfig.Cache),
		Mongo:   appConfig.DocStore,
		Breaker: breaker,
	})
}

func waitlistOptions(appConfig *config.ApplicationConfig) waitlist.Options {
	wc := appConfig.Config.Waitlist
	return waitlist.Options{
		Ref:            waitlist.DocumentRef{Collection: wc.Collection, ID: wc.DocumentID},
		MessageTTL:     wc.MessageTTL,
		SessionIdleTTL: wc.SessionIdleTTL,
		MaxSessions:    wc.MaxSessions,
		Metrics:        appConfig.RouterService.MetricsRegisterer(),
	}
}

func SetupCoreDomain(appConfig *config.ApplicationConfig) error {
	store, err := NewWaitlistStore(appConfig)
	if err != nil {
		return err
	}

	var cache monitoring.Pinger
	if appConfig.Cache != nil {
		cache = appConfig.Cache
	}

	appConfig.RouterService.MountController(monitoring.NewMonitoringControllerFactory(monitoring.Dependencies{
		DB:           appConfig.DB,
		Logger:       appConfig.Logger,
		Cache:        cache,
		Store:        store,
		StoreBackend: appConfig.Config.Waitlist.Store,
	}).CreateController())

	waitlistFactory := waitlist.NewWaitlistServiceFactory(store, appConfig.Logger, waitlistOptions(appConfig))
	appConfig.OnCleanup(waitlistFactory.Close)
	appConfig.RouterService.MountController(waitlistFactory.CreateController())

	appConfig.RouterService.MountController(showcase.NewShowcaseController(showcase.NewShowcaseService()))

	return nil
}
