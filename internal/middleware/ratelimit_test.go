package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"contacts-api/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
	_ = logger.Init("development")
}

func setupRateLimitRouter(rps float64, burst int) *gin.Engine {
	router := gin.New()
	router.Use(RateLimitMiddleware(rps, burst))
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func pingFrom(router *gin.Engine, addr string) int {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = addr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitMiddleware_BurstThenReject(t *testing.T) {
	router := setupRateLimitRouter(1, 2)

	assert.Equal(t, http.StatusOK, pingFrom(router, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, pingFrom(router, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, pingFrom(router, "10.0.0.1:1234"))
}

func TestRateLimitMiddleware_PerClientBuckets(t *testing.T) {
	router := setupRateLimitRouter(1, 1)

	assert.Equal(t, http.StatusOK, pingFrom(router, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, pingFrom(router, "10.0.0.1:1234"))

	// A different client address gets its own bucket
	assert.Equal(t, http.StatusOK, pingFrom(router, "10.0.0.2:1234"))
}
