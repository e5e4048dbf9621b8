package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	// DefaultLoginRateLimit is the default login attempts allowed per minute
	DefaultLoginRateLimit = 10
	// DefaultLoginBurstSize is the default burst size
	DefaultLoginBurstSize = 5
	// CleanupInterval is the interval for cleaning up stale limiters
	CleanupInterval = 5 * time.Minute
	// LimiterTTL is the time-to-live for inactive limiters
	LimiterTTL = 10 * time.Minute
)

// LoginRateLimiter manages per-client rate limiting for login attempts
type LoginRateLimiter struct {
	limiters  map[string]*limiterEntry
	mu        sync.Mutex
	rateLimit float64
	burstSize int
	stopCh    chan struct{}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLoginRateLimiter creates a new LoginRateLimiter with default settings
func NewLoginRateLimiter() *LoginRateLimiter {
	return NewLoginRateLimiterWithConfig(DefaultLoginRateLimit, DefaultLoginBurstSize)
}

// NewLoginRateLimiterWithConfig creates a LoginRateLimiter with custom configuration
func NewLoginRateLimiterWithConfig(attemptsPerMinute int, burstSize int) *LoginRateLimiter {
	rl := &LoginRateLimiter{
		limiters:  make(map[string]*limiterEntry),
		rateLimit: float64(attemptsPerMinute) / 60.0,
		burstSize: burstSize,
		stopCh:    make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// Allow checks if a login attempt from the given client is allowed
func (r *LoginRateLimiter) Allow(clientKey string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.limiters[clientKey]
	if !exists {
		entry = &limiterEntry{
			limiter:  rate.NewLimiter(rate.Limit(r.rateLimit), r.burstSize),
			lastSeen: time.Now(),
		}
		r.limiters[clientKey] = entry
	} else {
		entry.lastSeen = time.Now()
	}

	return entry.limiter.Allow()
}

// cleanup periodically removes stale limiters to prevent memory leaks
func (r *LoginRateLimiter) cleanup() {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.mu.Lock()
			now := time.Now()
			for key, entry := range r.limiters {
				if now.Sub(entry.lastSeen) > LimiterTTL {
					delete(r.limiters, key)
					log.Debug().Str("client", key).Msg("Cleaned up stale rate limiter")
				}
			}
			r.mu.Unlock()
		case <-r.stopCh:
			return
		}
	}
}

// Stop stops the cleanup goroutine
func (r *LoginRateLimiter) Stop() {
	close(r.stopCh)
}

// LoginRateLimitMiddleware returns an Echo middleware that limits login
// attempts per client IP.
func LoginRateLimitMiddleware(rl *LoginRateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.Allow(c.RealIP()) {
				log.Warn().Str("ip", c.RealIP()).Msg("Login rate limit exceeded")
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts, try again later")
			}
			return next(c)
		}
	}
}
