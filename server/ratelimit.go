package server

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	apperrors "github.com/jrsteele09/campusmate/internal/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL   = 10 * time.Minute
	limiterSweepSize = 1024
)

type clientEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// clientLimiter keeps one token bucket per client address
type clientLimiter struct {
	mu      sync.Mutex
	rate    rate.Limit
	burst   int
	clients map[string]*clientEntry
	now     func() time.Time
}

func newClientLimiter(r rate.Limit, burst int) *clientLimiter {
	return &clientLimiter{
		rate:    r,
		burst:   burst,
		clients: make(map[string]*clientEntry),
		now:     time.Now,
	}
}

func (c *clientLimiter) Allow(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if len(c.clients) >= limiterSweepSize {
		for k, e := range c.clients {
			if now.Sub(e.lastAccess) > limiterIdleTTL {
				delete(c.clients, k)
			}
		}
	}

	e, ok := c.clients[key]
	if !ok {
		e = &clientEntry{limiter: rate.NewLimiter(c.rate, c.burst)}
		c.clients[key] = e
	}
	e.lastAccess = now
	return e.limiter.AllowN(now, 1)
}

// RateLimitMiddleware throttles identity verification attempts per client
func (s *Server) RateLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.config.GetEnableRateLimiting() {
			next(w, r)
			return
		}
		ip := clientIP(r)
		if !s.limiter.Allow(ip) {
			log.Warn().Str("client", ip).Msg("Verification rate limit exceeded")
			s.metrics.RecordVerification("rate_limited")
			w.Header().Set("Retry-After", "60")
			redirectWithError(w, r, RouteAuth, userMessage(apperrors.ErrTooManyRequests))
			return
		}
		next(w, r)
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
