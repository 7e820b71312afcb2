// Package ratelimit provides per-client token bucket rate limiting for the
// API. Export endpoints get a much smaller budget: each request spins up a
// headless Chrome render.
package ratelimit

import (
	"os"
	"strings"
	"sync"
	"time"
)

// Rule is a per-path-prefix limit override.
type Rule struct {
	PathSuffix string  // matched against the end of the request path
	Capacity   int     // burst capacity
	PerSecond  float64 // refill rate
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled   bool
	Capacity  int     // default burst capacity per client
	PerSecond float64 // default refill rate per client
	Rules     []Rule
}

// LoadConfig builds the limiter configuration, honoring
// RATE_LIMIT_ENABLED=false for local development.
func LoadConfig() Config {
	cfg := Config{
		Enabled:   true,
		Capacity:  60,
		PerSecond: 10,
		Rules: []Rule{
			{PathSuffix: "/export", Capacity: 5, PerSecond: 0.2},
		},
	}
	if v := os.Getenv("RATE_LIMIT_ENABLED"); strings.EqualFold(v, "false") {
		cfg.Enabled = false
	}
	return cfg
}

type bucket struct {
	capacity   int
	perSecond  float64
	tokens     float64
	lastRefill time.Time
}

func (b *bucket) take(now time.Time) bool {
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens = min(float64(b.capacity), b.tokens+elapsed*b.perSecond)
	b.lastRefill = now
	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Limiter manages token buckets per (client, rule).
type Limiter struct {
	cfg     Config
	mu      sync.Mutex
	buckets map[string]*bucket
}

// NewLimiter creates a limiter from the configuration.
func NewLimiter(cfg Config) *Limiter {
	return &Limiter{cfg: cfg, buckets: make(map[string]*bucket)}
}

// Allow reports whether the client may perform a request against path.
func (l *Limiter) Allow(clientID, path string) bool {
	if !l.cfg.Enabled {
		return true
	}

	capacity, perSecond, key := l.cfg.Capacity, l.cfg.PerSecond, clientID
	for _, rule := range l.cfg.Rules {
		if strings.HasSuffix(path, rule.PathSuffix) {
			capacity, perSecond = rule.Capacity, rule.PerSecond
			key = clientID + " " + rule.PathSuffix
			break
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{capacity: capacity, perSecond: perSecond, tokens: float64(capacity), lastRefill: time.Now()}
		l.buckets[key] = b
	}
	return b.take(time.Now())
}
