package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func limitedRouter(rps float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(rps, burst))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func doPing(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = ip + ":1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitAllowsWithinBurst(t *testing.T) {
	r := limitedRouter(1, 3)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doPing(r, "10.0.0.1").Code)
	}
}

func TestRateLimitRejectsOverBurst(t *testing.T) {
	r := limitedRouter(0.001, 2)

	assert.Equal(t, http.StatusOK, doPing(r, "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, doPing(r, "10.0.0.1").Code)

	w := doPing(r, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")
}

func TestRateLimitIsPerClient(t *testing.T) {
	r := limitedRouter(0.001, 1)

	assert.Equal(t, http.StatusOK, doPing(r, "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, doPing(r, "10.0.0.1").Code)

	// A different client has its own bucket.
	assert.Equal(t, http.StatusOK, doPing(r, "10.0.0.2").Code)
}
