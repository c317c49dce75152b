package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/platewise/platewise-backend/internal/database"
	"github.com/platewise/platewise-backend/pkg/clientip"
)

const (
	// RateLimitWindow is the sliding window for the per-IP counter
	RateLimitWindow = 60 * time.Second
	// RateLimitMaxRequests is the maximum number of requests allowed in the window
	RateLimitMaxRequests = 30
	// RateLimitKeyPrefix is the Redis key prefix for rate limiting
	RateLimitKeyPrefix = "ratelimit:"
)

// RateLimitMiddleware provides Redis-backed per-IP rate limiting.
// Redis errors fail open so a cache outage does not take the API down.
func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ipAddress := clientip.RealClientIP(r)
		ctx := context.Background()
		key := RateLimitKeyPrefix + ipAddress

		count, err := database.RedisClient.Incr(ctx, key).Result()
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			database.RedisClient.Expire(ctx, key, RateLimitWindow)
		}

		if count > RateLimitMaxRequests {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"success":false,"message":"Too many requests. Please slow down and try again."}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
