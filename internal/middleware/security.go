package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/platewise/platewise-backend/pkg/clientip"
)

// SecurityHeaders sets security-related response headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// --- Global rate limiting (per-IP, in-process, production only) ---

const (
	globalRateLimitRPS    = 2
	globalRateLimitBurst  = 10
	globalCleanupInterval = 5 * time.Minute
	globalLimiterTTL      = 30 * time.Minute
)

type limiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

var (
	globalEntries     = make(map[string]*limiterEntry)
	globalEntriesMu   sync.Mutex
	globalCleanupOnce sync.Once
)

func startGlobalCleanup() {
	go func() {
		ticker := time.NewTicker(globalCleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			globalEntriesMu.Lock()
			for ip, e := range globalEntries {
				if time.Since(e.lastUse) > globalLimiterTTL {
					delete(globalEntries, ip)
				}
			}
			globalEntriesMu.Unlock()
		}
	}()
}

func getGlobalLimiter(ip string) *rate.Limiter {
	globalEntriesMu.Lock()
	defer globalEntriesMu.Unlock()

	e, ok := globalEntries[ip]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(globalRateLimitRPS, globalRateLimitBurst)}
		globalEntries[ip] = e
	}
	e.lastUse = time.Now()
	return e.limiter
}

// GlobalRateLimit throttles each client IP with a token bucket.
func GlobalRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !getGlobalLimiter(clientip.RealClientIP(r)).Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"success":false,"message":"Too many requests. Please slow down and try again."}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ProductionSecurity returns the middleware chain enabled when ENV=production.
// It also starts the background sweep that evicts idle per-IP limiters.
func ProductionSecurity() []func(http.Handler) http.Handler {
	globalCleanupOnce.Do(startGlobalCleanup)
	return []func(http.Handler) http.Handler{
		SecurityHeaders,
		GlobalRateLimit,
	}
}
