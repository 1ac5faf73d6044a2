package handler

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter 基于滑动窗口的按客户端 IP 限流器。
type RateLimiter struct {
	max    int
	window time.Duration

	mu      sync.Mutex
	clients map[string][]time.Time
}

// NewRateLimiter creates a limiter allowing max requests per window per client IP.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		max:     max,
		window:  window,
		clients: make(map[string][]time.Time),
	}
	go rl.cleanupLoop()
	return rl
}

// Middleware returns a gin middleware rejecting over-limit requests with 429.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP(), time.Now(), c) {
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(ip string, now time.Time, c *gin.Context) bool {
	windowStart := now.Add(-rl.window)

	rl.mu.Lock()
	timestamps := rl.clients[ip]

	// 就地过滤掉窗口外的时间戳
	valid := timestamps[:0]
	for _, ts := range timestamps {
		if ts.After(windowStart) {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= rl.max {
		oldest := valid[0]
		rl.clients[ip] = valid
		rl.mu.Unlock()

		retryAfter := int(oldest.Add(rl.window).Sub(now).Seconds()) + 1
		if retryAfter < 1 {
			retryAfter = 1
		}
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "请求过于频繁，请稍后再试"})
		return false
	}

	rl.clients[ip] = append(valid, now)
	rl.mu.Unlock()
	return true
}

// cleanupLoop periodically drops clients whose window has fully expired.
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		windowStart := time.Now().Add(-rl.window)
		rl.mu.Lock()
		for ip, timestamps := range rl.clients {
			valid := timestamps[:0]
			for _, ts := range timestamps {
				if ts.After(windowStart) {
					valid = append(valid, ts)
				}
			}
			if len(valid) == 0 {
				delete(rl.clients, ip)
				continue
			}
			rl.clients[ip] = valid
		}
		rl.mu.Unlock()
	}
}
