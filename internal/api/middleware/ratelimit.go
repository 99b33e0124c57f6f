package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/armchairgm/season-sim/pkg/utils"
)

// sessionLimiter tracks one token bucket per simulation session, falling
// back to the client IP when no session id is supplied.
type sessionLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit caps simulation requests per session. perMinute is the sustained
// rate; burst allows short spikes.
func RateLimit(perMinute, burst int) gin.HandlerFunc {
	sl := &sessionLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
	}
	go sl.evictStale()

	return func(c *gin.Context) {
		key := c.GetHeader("X-Session-ID")
		if key == "" {
			key = c.ClientIP()
		}
		if !sl.allow(key) {
			utils.SendRateLimited(c, "Too many simulation requests, slow down")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (sl *sessionLimiter) allow(key string) bool {
	sl.mu.Lock()
	entry, ok := sl.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(sl.rate, sl.burst)}
		sl.limiters[key] = entry
	}
	entry.lastSeen = time.Now()
	sl.mu.Unlock()
	return entry.limiter.Allow()
}

func (sl *sessionLimiter) evictStale() {
	for range time.Tick(10 * time.Minute) {
		cutoff := time.Now().Add(-30 * time.Minute)
		sl.mu.Lock()
		for key, entry := range sl.limiters {
			if entry.lastSeen.Before(cutoff) {
				delete(sl.limiters, key)
			}
		}
		sl.mu.Unlock()
	}
}
