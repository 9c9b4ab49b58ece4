package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kalibre-teknik/backoffice/internal/config"
)

// RateLimiter implements token bucket rate limiting per client key
type RateLimiter struct {
	buckets  map[string]*bucket
	rate     int
	capacity int
	mu       sync.Mutex
}

type bucket struct {
	tokens   float64
	lastFill time.Time
}

// NewRateLimiter creates a limiter refilling rate tokens per second
func NewRateLimiter(rate int) *RateLimiter {
	return &RateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		capacity: rate * 2,
	}
}

// RateLimit middleware implements rate limiting per IP
func RateLimit(cfg *config.Config) gin.HandlerFunc {
	limiter := NewRateLimiter(cfg.RateLimitRPS)
	limiter.StartCleanup()

	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}

// Allow checks if a request is allowed under rate limiting
func (r *RateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, exists := r.buckets[key]
	if !exists {
		b = &bucket{
			tokens:   float64(r.capacity),
			lastFill: time.Now(),
		}
		r.buckets[key] = b
	}

	now := time.Now()
	elapsed := now.Sub(b.lastFill).Seconds()
	b.tokens = min(float64(r.capacity), b.tokens+elapsed*float64(r.rate))
	b.lastFill = now

	if b.tokens < 1 {
		return false
	}

	b.tokens--
	return true
}

// CleanupOldBuckets removes idle buckets to bound memory
func (r *RateLimiter) CleanupOldBuckets() {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-1 * time.Hour)
	for key, b := range r.buckets {
		if b.lastFill.Before(cutoff) {
			delete(r.buckets, key)
		}
	}
}

// StartCleanup starts periodic cleanup of idle buckets
func (r *RateLimiter) StartCleanup() {
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			r.CleanupOldBuckets()
		}
	}()
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
