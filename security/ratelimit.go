package security

import (
	"log/slog"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter provides per-identifier rate limiting using a token bucket
// algorithm. Identifiers are strategy names, so the set of limiters is
// bounded by the number of registered strategies and needs no eviction.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	rate     float64
	burst    int
	logger   *slog.Logger

	// Statistics
	totalRejected int64
}

// NewRateLimiter creates a new rate limiter allowing requestsPerSecond
// sustained requests with bursts of up to burst requests per identifier.
// A non-positive requestsPerSecond disables limiting.
func NewRateLimiter(requestsPerSecond float64, burst int, logger *slog.Logger) *RateLimiter {
	if logger == nil {
		logger = slog.Default()
	}
	if burst < 1 {
		burst = 1
		logger.Warn("Invalid rate limiter burst, using minimum", "burst", burst)
	}

	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     requestsPerSecond,
		burst:    burst,
		logger:   logger,
	}
}

// Allow checks if a request for the given identifier is allowed.
func (rl *RateLimiter) Allow(identifier string) bool {
	if rl.rate <= 0 {
		return true
	}

	rl.mu.Lock()
	limiter, exists := rl.limiters[identifier]
	if !exists {
		limiter = rate.NewLimiter(rate.Limit(rl.rate), rl.burst)
		rl.limiters[identifier] = limiter
	}
	allowed := limiter.Allow()
	if !allowed {
		rl.totalRejected++
	}
	rl.mu.Unlock()

	if !allowed {
		rl.logger.Debug("Rate limit exceeded", "identifier", identifier)
	}
	return allowed
}

// Reset discards the limiter state for identifier, giving it a full bucket
// on its next request.
func (rl *RateLimiter) Reset(identifier string) {
	rl.mu.Lock()
	delete(rl.limiters, identifier)
	rl.mu.Unlock()
}

// Stats holds rate limiter statistics for monitoring
type Stats struct {
	CurrentEntries int   // Current number of tracked identifiers
	TotalRejected  int64 // Total number of rejected requests
}

// GetStats returns current rate limiter statistics.
func (rl *RateLimiter) GetStats() Stats {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return Stats{
		CurrentEntries: len(rl.limiters),
		TotalRejected:  rl.totalRejected,
	}
}
