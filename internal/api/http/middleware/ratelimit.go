package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/protrack-dev/protrack-backend/internal/auth"
)

const (
	// Idle clients are dropped once the registry grows past this size.
	maxTrackedClients = 10000
	clientIdleAfter   = 10 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterRegistry holds one token bucket per client key. Entries idle
// longer than clientIdleAfter are evicted when the registry is full, so
// the map stays bounded by the set of recently active clients.
type limiterRegistry struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	rps     rate.Limit
	burst   int
}

func newLimiterRegistry(rps rate.Limit, burst int) *limiterRegistry {
	return &limiterRegistry{
		clients: make(map[string]*clientLimiter),
		rps:     rps,
		burst:   burst,
	}
}

func (reg *limiterRegistry) get(key string, now time.Time) *rate.Limiter {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	cl, ok := reg.clients[key]
	if !ok {
		if len(reg.clients) >= maxTrackedClients {
			reg.evictIdle(now)
		}
		cl = &clientLimiter{limiter: rate.NewLimiter(reg.rps, reg.burst)}
		reg.clients[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

// evictIdle is called with reg.mu held.
func (reg *limiterRegistry) evictIdle(now time.Time) {
	for key, cl := range reg.clients {
		if now.Sub(cl.lastSeen) > clientIdleAfter {
			delete(reg.clients, key)
		}
	}
}

// RateLimit applies a per-client token bucket. Clients are keyed by the
// authenticated uid when present, otherwise by remote IP, so one noisy
// user cannot starve the rest.
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	reg := newLimiterRegistry(rps, burst)

	return func(c *gin.Context) {
		key := auth.UserUID(c)
		if key == "" {
			key = c.ClientIP()
		}

		if !reg.get(key, time.Now()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
