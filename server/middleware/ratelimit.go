package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/callsight/resilience"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// RequestsPerMinute is the maximum number of requests allowed per minute per key.
	RequestsPerMinute int
	// KeyFunc extracts the rate limit key from a request. Defaults to client IP.
	KeyFunc func(*gin.Context) string
}

// RateLimit returns a Gin middleware that applies per-key token-bucket
// rate limiting. Each key gets its own resilience.RateLimiter refilling
// at the configured per-minute rate, with burst up to the full minute
// allowance.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 60
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = IPBasedKey
	}

	kl := &keyedLimiters{
		limiters: make(map[string]*keyedLimiter),
		rate:     float64(cfg.RequestsPerMinute) / 60.0,
		burst:    cfg.RequestsPerMinute,
	}
	go kl.cleanup()

	return func(c *gin.Context) {
		key := cfg.KeyFunc(c)
		if !kl.allow(key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}

// IPBasedKey extracts the client IP for use as a rate limit key.
func IPBasedKey(c *gin.Context) string {
	return c.ClientIP()
}

// UserBasedKey extracts the user_id from the context, falling back to client IP.
func UserBasedKey(c *gin.Context) string {
	if uid, exists := c.Get("user_id"); exists {
		if s, ok := uid.(string); ok && s != "" {
			return s
		}
	}
	return c.ClientIP()
}

type keyedLimiter struct {
	rl       *resilience.RateLimiter
	lastSeen time.Time
}

// keyedLimiters maps rate limit keys to their token buckets and drops
// buckets for keys that have gone idle.
type keyedLimiters struct {
	mu       sync.Mutex
	limiters map[string]*keyedLimiter
	rate     float64
	burst    int
}

func (k *keyedLimiters) allow(key string) bool {
	k.mu.Lock()
	entry, ok := k.limiters[key]
	if !ok {
		entry = &keyedLimiter{
			rl: resilience.NewRateLimiter(resilience.RateLimiterConfig{
				Name:  key,
				Rate:  k.rate,
				Burst: k.burst,
			}),
		}
		k.limiters[key] = entry
	}
	entry.lastSeen = time.Now()
	k.mu.Unlock()

	return entry.rl.Allow()
}

func (k *keyedLimiters) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-10 * time.Minute)
		k.mu.Lock()
		for key, entry := range k.limiters {
			if entry.lastSeen.Before(cutoff) {
				delete(k.limiters, key)
			}
		}
		k.mu.Unlock()
	}
}
