package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/simp-lee/svcadmin/internal/domain"
)

// RateLimitConfig controls the per-client token bucket.
type RateLimitConfig struct {
	RPS   float64
	Burst int

	// MaxClients bounds how many client buckets are tracked at once.
	MaxClients int
	// IdleTTL drops a client's bucket after this long without requests.
	IdleTTL time.Duration
}

// RateLimit returns a gin middleware that limits each client IP to cfg.RPS
// requests per second with bursts of cfg.Burst. Rejected requests get a 429
// envelope and a Retry-After header.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.MaxClients <= 0 {
		cfg.MaxClients = 10000
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 10 * time.Minute
	}
	buckets := expirable.NewLRU[string, *rate.Limiter](cfg.MaxClients, nil, cfg.IdleTTL)
	var mu sync.Mutex

	limiterFor := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		limiter, ok := buckets.Get(key)
		if !ok {
			limiter = rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst)
			buckets.Add(key, limiter)
		}
		return limiter
	}

	return func(c *gin.Context) {
		if !limiterFor(c.ClientIP()).Allow() {
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(cfg.RPS)))
			abortWithError(c, domain.ErrRateLimited)
			return
		}
		c.Next()
	}
}

func retryAfterSeconds(rps float64) int {
	if rps <= 0 {
		return 1
	}
	return max(1, int(math.Ceil(1/rps)))
}
