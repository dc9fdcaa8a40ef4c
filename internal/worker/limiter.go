package worker

import (
	"context"
	"path/filepath"
	"sync"

	"golang.org/x/time/rate"
)

// ReadLimiter throttles artifact content reads per directory. Artifact
// roots frequently live on network mounts; parallel workers reading
// without a ceiling can saturate the share.
type ReadLimiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewReadLimiter creates a new read limiter
func NewReadLimiter(readsPerSecond float64, burst int) *ReadLimiter {
	if burst <= 0 {
		burst = 5
	}

	return &ReadLimiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(readsPerSecond),
		defaultBurst: burst,
	}
}

// Wait blocks until a read of the given path is allowed
func (l *ReadLimiter) Wait(ctx context.Context, path string) error {
	return l.getLimiter(filepath.Dir(path)).Wait(ctx)
}

// Allow checks if a read is allowed without waiting
func (l *ReadLimiter) Allow(path string) bool {
	return l.getLimiter(filepath.Dir(path)).Allow()
}

// SetDirRate sets a custom rate limit for a specific directory
func (l *ReadLimiter) SetDirRate(dir string, readsPerSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if burst <= 0 {
		burst = l.defaultBurst
	}

	l.limiters[dir] = rate.NewLimiter(rate.Limit(readsPerSecond), burst)
}

func (l *ReadLimiter) getLimiter(dir string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[dir]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[dir]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[dir] = limiter

	return limiter
}
