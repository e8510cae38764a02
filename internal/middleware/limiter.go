package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"resto-app/internal/state"

	"golang.org/x/time/rate"
)

// Rate Limit Tiers
const (
	// Login / registration (Strict)
	limitStrict = rate.Limit(2)
	burstStrict = 5

	// General (Default)
	limitGeneral = rate.Limit(10)
	burstGeneral = 20

	idleTimeout     = 3 * time.Minute
	cleanupInterval = time.Minute
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type Limiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor

	general rate.Limit
	burst   int
	now     func() time.Time
}

// NewLimiter builds a limiter whose general tier allows perSecond requests.
// A non-positive value keeps the default. Idle visitors are swept until ctx
// is done.
func NewLimiter(ctx context.Context, perSecond float64) *Limiter {
	l := &Limiter{
		visitors: make(map[string]*visitor),
		general:  limitGeneral,
		burst:    burstGeneral,
		now:      time.Now,
	}
	if perSecond > 0 {
		l.general = rate.Limit(perSecond)
		l.burst = int(2 * perSecond)
		if l.burst < 1 {
			l.burst = 1
		}
	}

	go l.cleanupLoop(ctx)
	return l
}

func (l *Limiter) getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		l.visitors[key] = &visitor{limiter, l.now()}
		return limiter
	}

	v.lastSeen = l.now()
	return v.limiter
}

func (l *Limiter) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.cleanup()
		}
	}
}

// cleanup removes visitors idle for longer than idleTimeout.
func (l *Limiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, v := range l.visitors {
		if l.now().Sub(v.lastSeen) > idleTimeout {
			delete(l.visitors, key)
		}
	}
}

func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, burst, tier := l.resolveRateTier(r)

		// Same identity gets separate quotas per tier, e.g. "client:abc:strict".
		key := fmt.Sprintf("%s:%s", identity(r), tier)

		if !l.getVisitor(key, limit, burst).Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// identity picks the rate-limit key for r. A client id minted for this very
// request says nothing about the caller, so those fall back to the address.
// The backend sees every shopper through the web server and keys on the
// forwarded client id instead.
func identity(r *http.Request) string {
	if clientID, ok := state.ClientIDFrom(r.Context()); ok && !state.IssuedNow(r.Context()) {
		return "client:" + clientID
	}
	if clientID := r.Header.Get(state.ClientIDHeader); clientID != "" {
		return "client:" + clientID
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}

// resolveRateTier determines which rate limit policy applies to the request.
func (l *Limiter) resolveRateTier(r *http.Request) (rate.Limit, int, string) {
	if r.Method == http.MethodPost {
		switch r.URL.Path {
		case "/login", "/register", "/users":
			return limitStrict, burstStrict, "strict"
		}
	}

	return l.general, l.burst, "general"
}
