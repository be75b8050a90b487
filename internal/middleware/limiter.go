package middleware

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"backoffice-console/internal/session"
	"backoffice-console/internal/utils"

	"golang.org/x/time/rate"
)

// Rate Limit Tiers
const (
	// Sign-in (Strict)
	limitStrict = rate.Limit(2)
	burstStrict = 5

	// General (Default)
	limitGeneral = rate.Limit(10)
	burstGeneral = 20

	// Dashboard fan-out and table screens
	limitFrontend = rate.Limit(20)
	burstFrontend = 40
)

const LoginPath = "/api/auth/login"

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitors = make(map[string]*visitor)
	mu       sync.Mutex
)

// init starts the background cleanup routine.
func init() {
	go cleanupVisitors()
}

// getVisitor retrieves or creates a rate limiter for the given key.
func getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	v, exists := visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// cleanupVisitors removes old entries from the visitors map to prevent memory leaks.
func cleanupVisitors() {
	for {
		time.Sleep(time.Minute)
		sweepVisitors(time.Now(), 3*time.Minute)
	}
}

func sweepVisitors(now time.Time, idle time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	for key, v := range visitors {
		if now.Sub(v.lastSeen) > idle {
			delete(visitors, key)
		}
	}
}

// RateLimitMiddleware checks if the request is allowed by the rate limiter.
// It must run after Auth.Authenticate so signed-in users get their own bucket.
func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, burst, tier := resolveRateTier(r)

		var identity string
		if s, ok := session.FromContext(r.Context()); ok {
			identity = "user:" + s.User.ID
		} else {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			identity = "ip:" + ip
		}

		// e.g. "user:42:strict"
		key := fmt.Sprintf("%s:%s", identity, tier)

		limiter := getVisitor(key, limit, burst)
		if !limiter.Allow() {
			utils.WriteJSONError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// resolveRateTier determines which rate limit policy applies to the request.
func resolveRateTier(r *http.Request) (rate.Limit, int, string) {
	if r.URL.Path == LoginPath {
		return limitStrict, burstStrict, "strict"
	}
	if r.Header.Get("X-Client-Type") == "frontend-heavy" {
		return limitFrontend, burstFrontend, "frontend"
	}
	return limitGeneral, burstGeneral, "general"
}
