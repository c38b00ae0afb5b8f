package ratelimit

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Middleware is a type that creates a new rate limit middleware. Every client gets its own
// token bucket, idle clients are evicted by a background loop.
type Middleware struct {
	o options

	mu      sync.Mutex
	clients map[string]*client
}

// New returns a new rate limit middleware with the provided options.
// The eviction loop runs until the given context is cancelled.
func New(ctx context.Context, opts ...Option) *Middleware {
	o := newOptions(opts...)

	m := &Middleware{
		o:       o,
		clients: make(map[string]*client),
	}

	if m.enabled() {
		go m.cleanupLoop(ctx)
	}

	return m
}

// Handler returns the rate limit middleware handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.enabled() {
			next.ServeHTTP(w, r)
			return
		}

		if !m.Allow(m.o.keyFunc(r)) {
			w.Header().Set("Retry-After", strconv.Itoa(m.retryAfterSeconds()))
			m.o.onLimited(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Allow reports whether the given client is within its rate limit and consumes a token if so.
func (m *Middleware) Allow(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(m.o.limit, m.o.burst)}
		m.clients[key] = c
	}
	c.lastSeen = time.Now()

	return c.limiter.Allow()
}

func (m *Middleware) enabled() bool {
	return m.o.limit > 0
}

func (m *Middleware) retryAfterSeconds() int {
	return int(math.Ceil(1 / float64(m.o.limit)))
}

func (m *Middleware) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(m.o.evictAfter / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.evict(time.Now().Add(-m.o.evictAfter))
		}
	}
}

func (m *Middleware) evict(cutoff time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, c := range m.clients {
		if c.lastSeen.Before(cutoff) {
			delete(m.clients, key)
		}
	}
}
