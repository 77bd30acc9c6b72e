package middleware

import (
	"net/http"
	"sync"

	"github.com/Domenick1991/flightdb/config"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	cfg      config.RateLimitConfig
	limiters sync.Map // map[string]*rate.Limiter
	logger   zerolog.Logger
}

func NewRateLimiter(cfg config.RateLimitConfig, logger zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		cfg:    cfg,
		logger: logger.With().Str("component", "rate_limit").Logger(),
	}
}

// Mutations limits POST, PUT, PATCH and DELETE requests. Reads pass through.
func (l *RateLimiter) Mutations() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.cfg.RPS <= 0 || !isMutation(c.Request.Method) {
			c.Next()
			return
		}

		key := c.ClientIP()
		if !l.getLimiter(key).Allow() {
			l.logger.Warn().Str("client_ip", key).Str("path", c.Request.URL.Path).Msg("rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

func (l *RateLimiter) getLimiter(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}

	burst := l.cfg.Burst
	if burst <= 0 {
		burst = 5
	}

	lim := rate.NewLimiter(rate.Limit(l.cfg.RPS), burst)
	actual, loaded := l.limiters.LoadOrStore(key, lim)
	if loaded {
		return actual.(*rate.Limiter)
	}
	return lim
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
