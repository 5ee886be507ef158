package router

import (
	"fmt"
	"net/http"
	"path"

	"github.com/akeren/referrly/pkg/ratelimit"
)

// NewRESTController declares a group of handlers under mountPoint. prepare runs
// when the controller is mounted and registers the handlers.
func NewRESTController(name, mountPoint string, prepare func(*RouterService, *RESTController)) *RESTController {
	return &RESTController{
		name:       name,
		mountPoint: cleanPath(mountPoint),
		prepare:    prepare,
	}
}

// NewVersionedRESTController mounts under /<version>/<mountPoint>.
func NewVersionedRESTController(name, version, mountPoint string, prepare func(*RouterService, *RESTController)) *RESTController {
	return &RESTController{
		name:       name,
		mountPoint: cleanPath(version + "/" + mountPoint),
		version:    version,
		prepare:    prepare,
	}
}

func cleanPath(p string) string {
	return path.Clean("/" + p)
}

func (controller *RESTController) routePath(relativePath string) string {
	return cleanPath(path.Join(controller.mountPoint, relativePath))
}

// RateLimitWith gives every handler of the controller one shared budget.
// Handler-level limiters still take precedence.
func (controller *RESTController) RateLimitWith(routerService *RouterService, limiter ratelimit.RateLimiter) *RESTController {
	routerService.bindOverrideRateLimiter(controller.mountPoint, limiter)
	return controller
}

func routeKey(method, routePath string) string {
	return method + "-" + routePath
}

func (routerService *RouterService) bindRoute(controller *RESTController, key, routePath string) {
	if other, taken := routerService.handlerToControllerMap[key]; taken {
		panic(fmt.Sprintf("A handler is already registered for path '%s' by controller '%s'", routePath, other.name))
	}
	routerService.handlerToControllerMap[key] = controller
}

func (routerService *RouterService) bindOverrideRateLimiter(key string, limiter ratelimit.RateLimiter) {
	if limiter == nil {
		return
	}
	if _, taken := routerService.rateLimitOverrides[key]; taken {
		panic(fmt.Sprintf("A rate limiter is already registered for '%s'", key))
	}
	routerService.rateLimitOverrides[key] = limiter
}

func createHandler(handler HandlerFunction) MiddlewareFunc {
	return func(c *RequestContext) {
		result := handler(c)
		if result == nil {
			GetLogger(c).Error("Handler returned no result", "route", c.FullPath())
			c.JSON(http.StatusInternalServerError, InternalServerErrorResult("The handler produced no response").ToJSON())
			return
		}
		c.JSON(result.StatusCode, result.ToJSON())
	}
}

// Handle registers handler for method on the controller. A non-nil limiter
// replaces the controller and global budgets for this route only.
func (routerService *RouterService) Handle(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	method, relativePath string,
	handler HandlerFunction,
	middlewares ...MiddlewareFunc,
) {
	routePath := controller.routePath(relativePath)
	key := routeKey(method, routePath)

	routerService.bindRoute(controller, key, routePath)
	routerService.bindOverrideRateLimiter(key, limiter)
	controller.handlerCount++

	chain := append(append([]MiddlewareFunc{}, middlewares...), createHandler(handler))
	routerService.engine.Handle(method, routePath, chain...)
	routerService.logger.Debug("Handler registered", "method", method, "path", routePath)
}

func (routerService *RouterService) AddPostHandler(controller *RESTController, limiter ratelimit.RateLimiter, relativePath string, handler HandlerFunction, middlewares ...MiddlewareFunc) {
	routerService.Handle(controller, limiter, http.MethodPost, relativePath, handler, middlewares...)
}

func (routerService *RouterService) AddGetHandler(controller *RESTController, limiter ratelimit.RateLimiter, relativePath string, handler HandlerFunction, middlewares ...MiddlewareFunc) {
	routerService.Handle(controller, limiter, http.MethodGet, relativePath, handler, middlewares...)
}
