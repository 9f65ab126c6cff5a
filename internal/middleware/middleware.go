package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Config holds middleware configuration.
type Config struct {
	Logger *zap.Logger

	// CORS is nil when cross-origin requests are not served.
	CORS *CORSConfig

	RateLimit      rate.Limit
	RateLimitBurst int
	// RateLimitExempt lists path prefixes that bypass the rate limiter.
	RateLimitExempt []string

	RequestTimeout time.Duration
}

// Chain builds the middleware stack. The returned stop function releases the
// rate limiter's background cleanup.
func Chain(config *Config) (func(http.Handler) http.Handler, func()) {
	rateLimiter := NewRateLimiter(config.RateLimit, config.RateLimitBurst, config.RateLimitExempt...)

	chain := func(handler http.Handler) http.Handler {
		// outer to inner: RequestID, Logger, Recovery, CORS, rate limit, Timeout
		h := Timeout(config.RequestTimeout)(handler)
		h = rateLimiter.Middleware()(h)
		if config.CORS != nil {
			h = CORS(config.CORS)(h)
		}
		h = Recovery(config.Logger)(h)
		h = Logger(config.Logger)(h)
		return RequestID(h)
	}
	return chain, rateLimiter.Stop
}
