package monitoring

import (
	"context"
	"net/http"
	"time"

	"github.com/akeren/referrly/config/router"
	"github.com/akeren/referrly/internal/log"
	"gorm.io/gorm"
)

// Pinger is anything whose liveness can be probed: the cache, the waitlist store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthStatus struct {
	Database      int    `json:"database"`       // 1 = healthy, 0 = unhealthy/not configured
	Cache         int    `json:"cache"`          // 1 = healthy, 0 = unhealthy/not configured
	WaitlistStore int    `json:"waitlist_store"` // 1 = healthy, 0 = unhealthy
	StoreBackend  string `json:"store_backend"`
	Uptime        int    `json:"uptime"` // uptime in seconds
}

func (h HealthStatus) Healthy() bool {
	return h.WaitlistStore == 1
}

type MonitoringController struct {
	db           *gorm.DB
	logger       *log.Logger
	cache        Pinger
	store        Pinger
	storeBackend string
	startTime    time.Time
	checkTimeout time.Duration
}

func NewMonitoringController(deps Dependencies) *router.RESTController {
	ctrl := &MonitoringController{
		db:           deps.DB,
		logger:       deps.Logger,
		cache:        deps.Cache,
		store:        deps.Store,
		storeBackend: deps.StoreBackend,
		startTime:    time.Now(),
		checkTimeout: 2 * time.Second,
	}

	return router.NewRESTController(
		"MonitoringController",
		"/",
		func(routerService *router.RouterService, controller *router.RESTController) {
			// One budget for both probes.
			controller.RateLimitWith(routerService, routerService.NewRateLimiter(monitoringRequestsPerMinute, time.Minute))

			routerService.AddGetHandler(controller, nil, "", func(c *router.RequestContext) *router.ServiceResult {
				return ctrl.monitor(c)
			})

			routerService.AddGetHandler(controller, nil, "health", func(c *router.RequestContext) *router.ServiceResult {
				return ctrl.healthCheck(routerService, c)
			})
		},
	)
}

const monitoringRequestsPerMinute = 10

func (ctrl *MonitoringController) healthCheck(
	routerService *router.RouterService,
	c *router.RequestContext,
) *router.ServiceResult {
	logger := routerService.GetLogger(c)
	logger.Info("Health check endpoint called")

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctrl.checkTimeout)
	defer cancel()

	healthStatus := ctrl.performHealthChecks(ctx, logger)

	statusCode := http.StatusOK
	if !healthStatus.Healthy() {
		statusCode = http.StatusServiceUnavailable
	}

	return &router.ServiceResult{
		StatusCode: statusCode,
		Data:       healthStatus,
		Message:    "referrly waitlist health check completed",
	}
}

func (ctrl *MonitoringController) monitor(
	c *router.RequestContext,
) *router.ServiceResult {
	return &router.ServiceResult{
		StatusCode: http.StatusOK,
		Data:       "Referrly waitlist service is operational.",
		Message:    "Monitoring successful",
	}
}

func (ctrl *MonitoringController) performHealthChecks(ctx context.Context, logger *log.Logger) HealthStatus {
	status := HealthStatus{
		StoreBackend: ctrl.storeBackend,
		Uptime:       int(time.Since(ctrl.startTime).Seconds()),
	}

	status.Database = ctrl.checkDatabase(ctx, logger)
	status.Cache = probe(ctx, "Cache", ctrl.cache, logger)
	status.WaitlistStore = probe(ctx, "Waitlist store", ctrl.store, logger)

	return status
}

func (ctrl *MonitoringController) checkDatabase(ctx context.Context, logger *log.Logger) int {
	if ctrl.db == nil {
		logger.Info("Database not configured, database health check skipped")
		return 0
	}

	sqlDB, err := ctrl.db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		logger.Error("Database health check failed")
		return 0
	}

	logger.Info("Database health check passed")
	return 1
}

func probe(ctx context.Context, name string, target Pinger, logger *log.Logger) int {
	if target == nil {
		logger.Info(name + " not configured, health check skipped")
		return 0
	}

	if err := target.Ping(ctx); err != nil {
		logger.Error(name+" health check failed", "error", err)
		return 0
	}

	logger.Info(name + " health check passed")
	return 1
}
