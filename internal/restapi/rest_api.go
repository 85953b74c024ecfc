package restapi

import (
	"log/slog"
	"net/http"

	"railroute.dev/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
	tripCache   *tripCache
}

// NewRestAPI creates a new RestAPI instance with its rate limiter and trip cache.
func NewRestAPI(app *app.Application) *RestAPI {
	if app.Logger == nil {
		app.Logger = slog.New(slog.DiscardHandler)
	}
	api := &RestAPI{
		Application: app,
		tripCache:   newTripCache(app.Config.CacheSize, app.Config.CacheTTL),
	}
	if app.Config.RateLimit > 0 {
		api.rateLimiter = NewRateLimitMiddleware(app.Config.RateLimit, app.Config.RateBurst)
		if app.Metrics != nil {
			api.rateLimiter.onReject = app.Metrics.RateLimited.Inc
		}
	}
	if app.GtfsManager != nil {
		app.GtfsManager.OnSwap(api.tripCache.reset)
	}
	return api
}

// Handler returns the routed API wrapped in the middleware chain.
func (api *RestAPI) Handler() http.Handler {
	var handler http.Handler = api.routes()
	if api.rateLimiter != nil {
		handler = api.rateLimiter.Handler(handler)
	}
	handler = api.compression(handler)
	handler = api.WithSecurityHeaders(handler)
	return NewRequestLoggingMiddleware(api.Logger)(handler)
}

// Close stops the background work of the middleware.
func (api *RestAPI) Close() {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
}
