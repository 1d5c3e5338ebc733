package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/msrishav-28/eduflow-dev/internal/utils"
)

// clientBuckets porte les deux limiteurs (minute et heure) d'un client.
type clientBuckets struct {
	perMinute *rate.Limiter
	perHour   *rate.Limiter
	lastSeen  time.Time
}

// RateLimiter limite le nombre de requêtes par adresse IP,
// avec un plafond par minute et un plafond par heure.
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientBuckets
	perMinute int
	perHour   int
}

func NewRateLimiter(perMinute, perHour int) *RateLimiter {
	rl := &RateLimiter{
		clients:   make(map[string]*clientBuckets),
		perMinute: perMinute,
		perHour:   perHour,
	}
	go rl.cleanupLoop()
	return rl
}

// exemptPaths sont les endpoints de supervision, jamais limités.
var exemptPaths = map[string]bool{
	"/health":    true,
	"/readiness": true,
	"/metrics":   true,
}

// Middleware applique la limite et répond 429 quand elle est dépassée.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if exemptPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		buckets := rl.bucketsFor(utils.ClientIP(r))

		if !buckets.perMinute.Allow() {
			w.Header().Set("Retry-After", "60")
			utils.Error(w, http.StatusTooManyRequests, "rate limit exceeded: too many requests per minute")
			return
		}
		if !buckets.perHour.Allow() {
			w.Header().Set("Retry-After", strconv.Itoa(3600))
			utils.Error(w, http.StatusTooManyRequests, "rate limit exceeded: too many requests per hour")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) bucketsFor(ip string) *clientBuckets {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.clients[ip]
	if !ok {
		b = &clientBuckets{
			perMinute: rate.NewLimiter(rate.Limit(float64(rl.perMinute)/60.0), rl.perMinute),
			perHour:   rate.NewLimiter(rate.Limit(float64(rl.perHour)/3600.0), rl.perHour),
		}
		rl.clients[ip] = b
	}
	b.lastSeen = time.Now()
	return b
}

// cleanupLoop purge les clients inactifs depuis plus d'une heure.
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-time.Hour)
		rl.mu.Lock()
		for ip, b := range rl.clients {
			if b.lastSeen.Before(cutoff) {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}
