package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/protrack-dev/protrack-backend/internal/auth"
)

func newLimitedRouter(rps rate.Limit, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if uid := c.GetHeader("X-Test-User"); uid != "" {
			c.Set(auth.CtxUserUID, uid)
		}
		c.Next()
	})
	r.Use(RateLimit(rps, burst))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func get(r *gin.Engine, user string) int {
	req := httptest.NewRequest("GET", "/ping", nil)
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr.Code
}

func TestBurstThenLimited(t *testing.T) {
	r := newLimitedRouter(rate.Limit(0.001), 2)

	assert.Equal(t, http.StatusOK, get(r, "alice"))
	assert.Equal(t, http.StatusOK, get(r, "alice"))
	assert.Equal(t, http.StatusTooManyRequests, get(r, "alice"))
}

func TestLimitsIsolatedPerUser(t *testing.T) {
	r := newLimitedRouter(rate.Limit(0.001), 1)

	assert.Equal(t, http.StatusOK, get(r, "alice"))
	assert.Equal(t, http.StatusTooManyRequests, get(r, "alice"))

	// A different principal has its own bucket.
	assert.Equal(t, http.StatusOK, get(r, "bob"))
}

func TestIdleClientsEvictedWhenRegistryFull(t *testing.T) {
	reg := newLimiterRegistry(rate.Limit(1), 1)

	t0 := time.Now()
	for i := 0; i < maxTrackedClients; i++ {
		reg.get(fmt.Sprintf("client-%d", i), t0)
	}
	require.Len(t, reg.clients, maxTrackedClients)

	// client-0 stays active; everyone else goes idle.
	t1 := t0.Add(clientIdleAfter)
	reg.get("client-0", t1)

	// A new client past the idle window triggers eviction of the stale set.
	t2 := t1.Add(time.Minute)
	reg.get("newcomer", t2)

	assert.Len(t, reg.clients, 2)
	assert.Contains(t, reg.clients, "client-0")
	assert.Contains(t, reg.clients, "newcomer")
}
