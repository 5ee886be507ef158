package router

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/akeren/referrly/pkg/ratelimit"
	"github.com/gin-gonic/gin"
)

// NewRateLimiter builds a limiter sharing the router's backend: Redis when the
// router has a reachable client, in-memory otherwise.
func (routerService *RouterService) NewRateLimiter(requests int, window time.Duration) ratelimit.RateLimiter {
	return ratelimit.NewRateLimiter(&ratelimit.RateLimitConfig{
		Requests: requests,
		Window:   window,
		Redis:    routerService.redisClient,
		Logger:   routerService.logger,
	})
}

func (routerService *RouterService) GetDefaultRateLimitConfig() (int, time.Duration) {
	return routerService.rateLimiter.GetLimitDetails()
}

// limiterFor resolves handler override, then controller override, then the
// global limiter. scope names the budget so limiters sharing one Redis never
// count into each other's keys.
func (routerService *RouterService) limiterFor(controller *RESTController, handlerKey string) (limiter ratelimit.RateLimiter, scope string) {
	if limiter, ok := routerService.rateLimitOverrides[handlerKey]; ok {
		return limiter, handlerKey
	}
	if limiter, ok := routerService.rateLimitOverrides[controller.mountPoint]; ok {
		return limiter, controller.mountPoint
	}
	return routerService.rateLimiter, "global"
}

func (routerService *RouterService) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		handlerKey := routeKey(c.Request.Method, c.FullPath())
		controller, found := routerService.handlerToControllerMap[handlerKey]
		if !found || controller == nil {
			GetLogger(c).Error("Request reached a route with no controller mapping", "path", c.Request.URL.Path, "method", c.Request.Method)
			c.AbortWithStatusJSON(http.StatusNotFound, NotFoundResult(fmt.Sprintf("There is no handler configured to handle any resource at the path %s", c.Request.URL.Path)).ToJSON())
			return
		}

		limiter, scope := routerService.limiterFor(controller, handlerKey)
		limit, window := limiter.GetLimitDetails()
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Window", window.String())

		clientIP := c.ClientIP()
		limited, err := limiter.IsLimited(c.Request.Context(), rateLimitKey(scope, clientIP))
		if err != nil {
			// Backend errors let the request through.
			GetLogger(c).Error("Rate limiter error", "error", err, "client_ip", clientIP)
			c.Next()
			return
		}

		if limited {
			GetLogger(c).Warn("Rate limit exceeded", "client_ip", clientIP, "route", c.FullPath())
			retryAfter := strconv.Itoa(max(1, int(math.Ceil(window.Seconds()))))
			c.Header("Retry-After", retryAfter)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, TooManyRequestsResult(RateLimitResponse{
				Limit:      limit,
				Window:     window.String(),
				RetryAfter: retryAfter,
			}).ToJSON())
			return
		}

		c.Next()
	}
}

func rateLimitKey(scope, clientIP string) string {
	return "ratelimit:" + scope + ":" + clientIP
}
