package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type rateLimiter struct {
	requests map[string]*clientRequest
	mu       sync.Mutex
	limit    int
	window   time.Duration
}

type clientRequest struct {
	count     int
	resetTime time.Time
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		requests: make(map[string]*clientRequest),
		limit:    limit,
		window:   window,
	}

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			rl.cleanup()
		}
	}()

	return rl
}

func (rl *rateLimiter) middleware(keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFn(c)

		rl.mu.Lock()
		defer rl.mu.Unlock()

		client, exists := rl.requests[key]
		now := time.Now()

		if !exists || now.After(client.resetTime) {
			rl.requests[key] = &clientRequest{
				count:     1,
				resetTime: now.Add(rl.window),
			}
			c.Next()
			return
		}

		if client.count >= rl.limit {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": client.resetTime.Sub(now).Seconds(),
			})
			c.Abort()
			return
		}

		client.count++
		c.Next()
	}
}

func (rl *rateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, client := range rl.requests {
		if now.After(client.resetTime) {
			delete(rl.requests, key)
		}
	}
}

var (
	globalLimiter = newRateLimiter(100, time.Minute)
	aiLimiter     = newRateLimiter(20, time.Minute)
)

// RateLimiter limits all traffic per client IP.
func RateLimiter() gin.HandlerFunc {
	return globalLimiter.middleware(func(c *gin.Context) string {
		return c.ClientIP()
	})
}

// AIRateLimiter is a tighter per-user budget for the model-backed endpoints,
// which are slow and cost real money per call. Keyed by user so one client
// cannot drain the shared model quota from several IPs.
func AIRateLimiter() gin.HandlerFunc {
	return aiLimiter.middleware(func(c *gin.Context) string {
		if userID := GetUserID(c); userID != "" {
			return userID
		}
		return c.ClientIP()
	})
}
