package refresh

import (
	"log/slog"
	"net/http"

	"github.com/giantswarm/oauth-refresh/instrumentation"
	"github.com/giantswarm/oauth-refresh/oauth2client"
	"golang.org/x/oauth2"
)

// Option is a functional option for configuring a Registry.
type Option func(*Registry)

// WithLogger sets the logger for registration and refresh events.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithHTTPClient sets the HTTP client the default client factory uses for
// token requests. It has no effect when WithClientFactory is also given.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Registry) {
		r.httpClient = client
	}
}

// WithClientFactory replaces the factory that builds an Exchanger for each
// registered strategy. Tests use this to install stubs.
func WithClientFactory(factory ClientFactory) Option {
	return func(r *Registry) {
		if factory != nil {
			r.newClient = factory
		}
	}
}

// WithInstrumentation enables OpenTelemetry metrics and tracing.
func WithInstrumentation(inst *instrumentation.Instrumentation) Option {
	return func(r *Registry) {
		r.instrumentation = inst
	}
}

// WithRateLimit limits refresh requests per strategy to requestsPerSecond
// with bursts of up to burst. Requests over the limit fail with
// ErrRateLimited without reaching the provider. Zero disables limiting.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(r *Registry) {
		r.rateLimit = requestsPerSecond
		r.rateBurst = burst
	}
}

// WithAuditLogging enables security audit events for registrations and
// refreshes. Token values are hashed before they are logged.
func WithAuditLogging(enabled bool) Option {
	return func(r *Registry) {
		r.auditEnabled = enabled
	}
}

// defaultClientFactory builds an oauth2client.Client. Client credentials
// are sent in the request body.
func defaultClientFactory(httpClient *http.Client) ClientFactory {
	return func(cfg ClientConfig) (Exchanger, error) {
		return oauth2client.New(&oauth2client.Config{
			ClientID:       cfg.ClientID,
			ClientSecret:   cfg.ClientSecret,
			BaseSite:       cfg.BaseSite,
			AuthorizeURL:   cfg.AuthorizeURL,
			AccessTokenURL: cfg.RefreshURL,
			CustomHeaders:  cfg.CustomHeaders,
			AuthStyle:      oauth2.AuthStyleInParams,
			HTTPClient:     httpClient,
		})
	}
}
