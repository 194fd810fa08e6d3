package instrumentation

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all metric instruments for the refresh library
type Metrics struct {
	// Registry Metrics
	StrategyRegistered   metric.Int64Counter
	RegistrationFailed   metric.Int64Counter
	RegisteredStrategies metric.Int64ObservableGauge

	// Refresh Metrics
	TokenRefreshed  metric.Int64Counter
	RefreshDuration metric.Float64Histogram

	// Security Metrics
	RateLimitExceeded metric.Int64Counter
}

// newMetrics creates and registers all metric instruments
func newMetrics(inst *Instrumentation) (*Metrics, error) {
	m := &Metrics{}
	registryMeter := inst.Meter("registry")
	securityMeter := inst.Meter("security")

	var err error
	m.StrategyRegistered, err = registryMeter.Int64Counter(
		"oauth.refresh.strategy.registered",
		metric.WithDescription("Number of strategies registered"),
		metric.WithUnit("{strategy}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create strategy.registered counter: %w", err)
	}

	m.RegistrationFailed, err = registryMeter.Int64Counter(
		"oauth.refresh.strategy.registration_failed",
		metric.WithDescription("Number of rejected strategy registrations"),
		metric.WithUnit("{strategy}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create strategy.registration_failed counter: %w", err)
	}

	m.RegisteredStrategies, err = registryMeter.Int64ObservableGauge(
		"oauth.refresh.strategies",
		metric.WithDescription("Current number of registered strategies"),
		metric.WithUnit("{strategy}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create strategies gauge: %w", err)
	}

	m.TokenRefreshed, err = registryMeter.Int64Counter(
		"oauth.refresh.token.requests",
		metric.WithDescription("Number of refresh token exchanges attempted"),
		metric.WithUnit("{refresh}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create token.requests counter: %w", err)
	}

	m.RefreshDuration, err = registryMeter.Float64Histogram(
		"oauth.refresh.token.duration",
		metric.WithDescription("Refresh token exchange duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create token.duration histogram: %w", err)
	}

	m.RateLimitExceeded, err = securityMeter.Int64Counter(
		"oauth.refresh.rate_limit.exceeded",
		metric.WithDescription("Number of refresh requests rejected by the rate limiter"),
		metric.WithUnit("{violation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate_limit.exceeded counter: %w", err)
	}

	return m, nil
}

// RecordStrategyRegistered records a successful registration
func (m *Metrics) RecordStrategyRegistered(ctx context.Context, strategy, shape string) {
	m.StrategyRegistered.Add(ctx, 1, metric.WithAttributes(
		attribute.String("strategy", strategy),
		attribute.String("shape", shape),
	))
}

// RecordRegistrationFailed records a rejected registration
func (m *Metrics) RecordRegistrationFailed(ctx context.Context, errorKind string) {
	m.RegistrationFailed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("error_kind", errorKind),
	))
}

// RecordTokenRefresh records a refresh token exchange and its duration
func (m *Metrics) RecordTokenRefresh(ctx context.Context, strategy string, success bool, durationMs float64) {
	m.TokenRefreshed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("strategy", strategy),
		attribute.Bool("success", success),
	))
	m.RefreshDuration.Record(ctx, durationMs, metric.WithAttributes(
		attribute.String("strategy", strategy),
	))
}

// RecordRateLimitExceeded records a refresh request rejected by the rate limiter
func (m *Metrics) RecordRateLimitExceeded(ctx context.Context, strategy string) {
	m.RateLimitExceeded.Add(ctx, 1, metric.WithAttributes(
		attribute.String("strategy", strategy),
	))
}
