// Package instrumentation provides OpenTelemetry (OTEL) instrumentation for the oauth-refresh library.
//
// Registries record metrics and spans for strategy registration and refresh
// token exchanges. Instrumentation is off by default; when disabled, no-op
// providers are used and recording has no cost.
//
// # Quick Start
//
// Wire in the application's own providers:
//
//	inst, err := instrumentation.New(instrumentation.Config{
//		ServiceName:    "billing-api",
//		ServiceVersion: "1.0.0",
//		Enabled:        true,
//		MeterProvider:  otel.GetMeterProvider(),
//		TracerProvider: otel.GetTracerProvider(),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer inst.Shutdown(context.Background())
//
//	registry := refresh.NewRegistry(refresh.WithInstrumentation(inst))
//
// # Available Metrics
//
// Registry:
//   - oauth.refresh.strategy.registered{strategy, shape} - Strategies registered
//   - oauth.refresh.strategy.registration_failed{error_kind} - Rejected registrations
//   - oauth.refresh.strategies - Current number of registered strategies
//
// Refresh:
//   - oauth.refresh.token.requests{strategy, success} - Refresh exchanges attempted
//   - oauth.refresh.token.duration{strategy} - Exchange duration in milliseconds
//
// Security:
//   - oauth.refresh.rate_limit.exceeded{strategy} - Requests rejected by the rate limiter
//
// # Traces
//
// Spans are named "refresh.register" and "refresh.request_new_access_token"
// and carry the attributes defined in this package. Token values are never
// recorded.
package instrumentation
