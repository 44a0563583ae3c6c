package workers

import (
	"sync"

	"golang.org/x/time/rate"

	"resume-extract/internal/config"
	"resume-extract/internal/logging"
)

// RateLimiter throttles how many extraction jobs the pool accepts. Uploads
// carry no caller identity at this layer, so the limit is global.
type RateLimiter struct {
	limiter  *rate.Limiter
	logger   logging.Logger
	mu       sync.Mutex
	accepted int64
	rejected int64
}

// NewRateLimiter creates a new rate limiter instance. The configured
// per-minute limit is converted to a per-second token rate with a small
// burst allowance.
func NewRateLimiter(cfg *config.Config) *RateLimiter {
	rps := rate.Limit(float64(cfg.Workers.RateLimit) / 60.0)
	burst := 5

	return &RateLimiter{
		limiter: rate.NewLimiter(rps, burst),
		logger:  logging.GetGlobalLogger().WithField("component", "rate_limiter"),
	}
}

// Allow reports whether another job may be accepted right now.
func (rl *RateLimiter) Allow() bool {
	allowed := rl.limiter.Allow()

	rl.mu.Lock()
	if allowed {
		rl.accepted++
	} else {
		rl.rejected++
	}
	rl.mu.Unlock()

	if !allowed {
		rl.logger.Debug("Extraction request rejected by rate limiter")
	}
	return allowed
}

// Stats returns accepted/rejected counters plus the configured limit.
func (rl *RateLimiter) Stats() map[string]interface{} {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return map[string]interface{}{
		"accepted": rl.accepted,
		"rejected": rl.rejected,
		"limit":    float64(rl.limiter.Limit()),
		"burst":    rl.limiter.Burst(),
	}
}
