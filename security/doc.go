// Package security provides rate limiting and audit logging for refresh
// token exchanges.
//
// # Rate Limiting
//
// The RateLimiter keeps one token bucket per identifier (strategy name). A
// request over the limit is rejected immediately; nothing is queued or
// retried.
//
//	limiter := security.NewRateLimiter(5, 10, logger)
//	if !limiter.Allow("google") {
//	    // reject
//	}
//
// # Audit Logging
//
// The Auditor writes structured security events through slog. Refresh
// tokens are never logged; HashForLogging produces a short, stable digest
// that can be used to correlate events.
package security
