package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLimiter(t *testing.T, limit int) (*RateLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	rl := NewCommandRateLimiter(rdb, limit)
	fixed := time.Date(2024, 3, 1, 12, 0, 30, 0, time.UTC)
	rl.now = func() time.Time { return fixed }
	return rl, mr
}

func limitedRouter(rl *RateLimiter, addr string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/cmd", func(c *gin.Context) {
		if addr != "" {
			c.Set(AddressKey, addr)
		}
		c.Next()
	}, rl.RateLimitMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestIsAllowed(t *testing.T) {
	rl, mr := setupLimiter(t, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, _, _, err := rl.IsAllowed(ctx, "0xabc")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	allowed, remaining, reset, err := rl.IsAllowed(ctx, "0xabc")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Zero(t, remaining)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 1, 0, 0, time.UTC), reset)

	// other callers have their own window
	allowed, remaining, _, err = rl.IsAllowed(ctx, "0xdef")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 1, remaining)

	keys := mr.Keys()
	assert.Len(t, keys, 2)
	assert.True(t, mr.TTL(keys[0]) > 0)
}

func TestRateLimitMiddleware(t *testing.T) {
	rl, _ := setupLimiter(t, 2)
	router := limitedRouter(rl, "0xabc")

	codes := make([]int, 3)
	for i := range codes {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cmd", nil))
		codes[i] = w.Code
		if i == 0 {
			assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
			assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
		}
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestRateLimitMiddlewareWithoutCaller(t *testing.T) {
	rl, _ := setupLimiter(t, 2)
	router := limitedRouter(rl, "")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cmd", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimitMiddlewareDisabled(t *testing.T) {
	for _, rl := range []*RateLimiter{nil, NewCommandRateLimiter(nil, 10)} {
		router := limitedRouter(rl, "")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cmd", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}

func TestRateLimitMiddlewareRedisDown(t *testing.T) {
	rl, mr := setupLimiter(t, 2)
	mr.Close()
	router := limitedRouter(rl, "0xabc")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cmd", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Error"))
}
