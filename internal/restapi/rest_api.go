package restapi

import (
	"net/http"
	"time"

	"wageconv.org/explorer/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second),
	}
}

// Close releases the rate limiter's background cleanup.
func (api *RestAPI) Close() {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
}

// Wrap applies the shared middleware chain to handler. Requests pass through
// request logging, security headers, rate limiting and compression in that order.
func (api *RestAPI) Wrap(handler http.Handler) http.Handler {
	handler = CompressionMiddleware(handler)
	if api.rateLimiter != nil {
		handler = api.rateLimiter.Handler(handler)
	}
	handler = securityHeaders(handler)

	var counter RequestCounter
	if api.Metrics != nil {
		counter = api.Metrics
	}
	return NewRequestLoggingMiddleware(api.Logger, counter)(handler)
}
