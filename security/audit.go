package security

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"
)

// Auditor handles security event logging with token hashing.
type Auditor struct {
	logger  *slog.Logger
	enabled bool
}

// NewAuditor creates a new security auditor
func NewAuditor(logger *slog.Logger, enabled bool) *Auditor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auditor{
		logger:  logger,
		enabled: enabled,
	}
}

// Event represents a security audit event
type Event struct {
	Type      string
	Strategy  string
	ClientID  string
	TokenHash string
	Details   map[string]any
	Timestamp time.Time
}

// LogEvent logs a security event
func (a *Auditor) LogEvent(event Event) {
	if a == nil || !a.enabled {
		return
	}

	event.Timestamp = time.Now()

	a.logger.Info("security_audit",
		"event_type", event.Type,
		"strategy", event.Strategy,
		"client_id", event.ClientID,
		"token_hash", event.TokenHash,
		"details", event.Details,
		"timestamp", event.Timestamp,
	)
}

// LogStrategyRegistered logs when a strategy is registered or replaced
func (a *Auditor) LogStrategyRegistered(strategy, clientID, shape string, replaced bool) {
	a.LogEvent(Event{
		Type:     "strategy_registered",
		Strategy: strategy,
		ClientID: clientID,
		Details: map[string]any{
			"shape":    shape,
			"replaced": replaced,
		},
	})
}

// LogTokenRefreshed logs a successful refresh. The refresh token is hashed.
func (a *Auditor) LogTokenRefreshed(strategy, refreshToken string, rotated bool) {
	a.LogEvent(Event{
		Type:      "token_refreshed",
		Strategy:  strategy,
		TokenHash: HashForLogging(refreshToken),
		Details: map[string]any{
			"rotated": rotated,
		},
	})
}

// LogRefreshFailure logs a failed refresh. The refresh token is hashed.
func (a *Auditor) LogRefreshFailure(strategy, refreshToken, reason string) {
	a.LogEvent(Event{
		Type:      "refresh_failure",
		Strategy:  strategy,
		TokenHash: HashForLogging(refreshToken),
		Details: map[string]any{
			"reason": reason,
		},
	})
}

// LogRateLimitExceeded logs a rate limit violation
func (a *Auditor) LogRateLimitExceeded(strategy string) {
	a.LogEvent(Event{
		Type:     "rate_limit_exceeded",
		Strategy: strategy,
	})
}

// HashForLogging returns a short SHA256 prefix of sensitive data so that
// log lines can be correlated without revealing the value.
func HashForLogging(sensitive string) string {
	if sensitive == "" {
		return "<empty>"
	}
	hash := sha256.Sum256([]byte(sensitive))
	return hex.EncodeToString(hash[:])[:16]
}
