package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/akeren/referrly/internal/log"
	"github.com/akeren/referrly/pkg/ratelimit"
	"github.com/akeren/referrly/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const (
	DefaultTimeoutDuration = 30 * time.Second

	// SessionHeader carries the browser session id for per-session form state.
	SessionHeader = "X-Waitlist-Session"
)

type RouterService struct {
	engine          *gin.Engine
	server          *http.Server
	logger          *log.Logger
	settings        HTTPSettings
	requestTimeout  time.Duration
	rateLimiter     ratelimit.RateLimiter
	redisClient     *redis.Client
	metricsRegistry *prometheus.Registry

	handlerToControllerMap map[string]*RESTController
	rateLimitOverrides     map[string]ratelimit.RateLimiter
}

type RouterConfig struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RequestTimeout    time.Duration
}

// CreateRouterService wires the gin engine and its middleware chain. A nil
// redisClient keeps rate limiting in-process.
func CreateRouterService(logger *log.Logger, redisClient *redis.Client, routerConfig *RouterConfig) *RouterService {
	if mode, ok := os.LookupEnv("GIN_MODE"); ok && mode != "" {
		logger.Info("Setting Gin mode", "mode", mode)
		gin.SetMode(mode)
	}

	requestTimeout := routerConfig.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = DefaultTimeoutDuration
	}

	rs := &RouterService{
		engine:                 gin.New(),
		logger:                 logger,
		settings:               LoadHTTPSettings(),
		requestTimeout:         requestTimeout,
		redisClient:            usableRedisClient(logger, redisClient),
		rateLimitOverrides:     make(map[string]ratelimit.RateLimiter),
		handlerToControllerMap: make(map[string]*RESTController),
	}

	rs.engine.Use(gin.Recovery())

	if utils.IsTracingEnabled() {
		rs.engine.Use(otelgin.Middleware(utils.OTelServiceName()))
		logger.Info("Tracing middleware enabled")
	}

	rs.configureTrustedProxies()

	rs.rateLimiter = rs.NewRateLimiter(routerConfig.RateLimitRequests, routerConfig.RateLimitWindow)
	limit, window := rs.rateLimiter.GetLimitDetails()
	logger.Info("Rate limiting initialized", "requests", limit, "window", window, "redis", rs.redisClient != nil)

	// /metrics is registered before the rate limiter so scrapes are never throttled.
	rs.mountMetrics()

	rs.engine.Use(
		rs.correlationIDMiddleware(),
		rs.securityHeadersMiddleware(),
		rs.maxBodySizeMiddleware(),
		rs.corsMiddleware(),
		rs.rateLimitMiddleware(),
		rs.timeoutMiddleware(),
		rs.requestLoggingMiddleware(),
	)

	rs.engine.HandleMethodNotAllowed = true
	rs.engine.RedirectTrailingSlash = true
	rs.engine.NoRoute(rs.notFoundHandler)
	rs.engine.NoMethod(rs.methodNotAllowedHandler)

	rs.server = &http.Server{
		Addr:              ":" + rs.settings.Port,
		Handler:           rs.engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       requestTimeout,
		WriteTimeout:      requestTimeout,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("Router service initialized")
	return rs
}

func usableRedisClient(logger *log.Logger, client *redis.Client) *redis.Client {
	if client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unreachable for rate limiting, falling back to in-memory", "error", err)
		return nil
	}
	return client
}

// Gin trusts every proxy by default, which lets X-Forwarded-For spoof ClientIP.
func (routerService *RouterService) configureTrustedProxies() {
	proxies := routerService.settings.TrustedProxies
	if err := routerService.engine.SetTrustedProxies(proxies); err != nil {
		routerService.logger.Error("Invalid TRUSTED_PROXIES; disabling trusted proxies", "error", err)
		_ = routerService.engine.SetTrustedProxies(nil)
		return
	}
	if proxies == nil {
		routerService.logger.Info("Trusted proxies disabled (TRUSTED_PROXIES not set)")
	}
}

// MetricsRegisterer returns the registry served on /metrics, or nil when metrics are disabled.
func (routerService *RouterService) MetricsRegisterer() prometheus.Registerer {
	if routerService.metricsRegistry == nil {
		return nil
	}
	return routerService.metricsRegistry
}

func (routerService *RouterService) GetEngine() *gin.Engine {
	return routerService.engine
}

func (routerService *RouterService) GetLogger(c *RequestContext) *log.Logger {
	return routerService.logger.WithCorrelationID(c.Request.Context())
}

func (routerService *RouterService) Cleanup() {
	if err := routerService.rateLimiter.Close(); err != nil {
		routerService.logger.Error("Failed to close rate limiter", "error", err)
	}
	for _, limiter := range routerService.rateLimitOverrides {
		_ = limiter.Close()
	}
	routerService.logger.Info("Router service cleanup completed")
}

func (routerService *RouterService) MountController(controller *RESTController) {
	routerService.logger.Info("Mounting controller",
		"name", controller.name,
		"path", controller.mountPoint,
		"version", controller.version,
	)

	controller.prepare(routerService, controller)

	routerService.logger.Info("Controller mounted",
		"name", controller.name,
		"handlers", controller.handlerCount,
	)
}

func (routerService *RouterService) RunHTTPServer() error {
	routerService.logger.Info("Starting HTTP server", "addr", routerService.server.Addr)

	if err := routerService.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		routerService.logger.Error("Failed to start HTTP server", "error", err)
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

func (routerService *RouterService) Shutdown(ctx context.Context) error {
	routerService.logger.Info("Shutting down HTTP server gracefully...")
	return routerService.server.Shutdown(ctx)
}
