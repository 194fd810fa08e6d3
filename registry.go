package refresh

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/oauth2"

	"github.com/giantswarm/oauth-refresh/instrumentation"
	"github.com/giantswarm/oauth-refresh/security"
)

// GrantTypeRefreshToken is the grant_type sent with every refresh request
const GrantTypeRefreshToken = "refresh_token"

// registeredStrategy is an immutable registry entry. A new entry replaces
// the old one on re-registration; entries are never modified in place.
type registeredStrategy struct {
	name     string
	strategy Strategy
	shape    string
	config   ClientConfig
	client   Exchanger
}

// Registry maps strategy names to OAuth2 exchangers so that stored refresh
// tokens can be exchanged for new access tokens.
//
// A Registry is safe for concurrent use. Registration under an existing
// name replaces the previous entry (last write wins).
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]*registeredStrategy

	newClient  ClientFactory
	httpClient *http.Client
	logger     *slog.Logger

	instrumentation *instrumentation.Instrumentation
	tracer          trace.Tracer

	rateLimit float64
	rateBurst int
	limiter   *security.RateLimiter

	auditEnabled bool
	auditor      *security.Auditor
}

// NewRegistry creates an empty registry
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		strategies: make(map[string]*registeredStrategy),
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.newClient == nil {
		r.newClient = defaultClientFactory(r.httpClient)
	}

	if r.instrumentation != nil {
		r.tracer = r.instrumentation.Tracer("registry")
		if err := r.instrumentation.RegisterRegistrySizeCallback(func() int64 {
			return int64(r.Len())
		}); err != nil {
			r.logger.Warn("Failed to register registry size metric", "error", err)
		}
	} else {
		r.tracer = tracenoop.NewTracerProvider().Tracer("")
	}

	if r.rateLimit > 0 {
		r.limiter = security.NewRateLimiter(r.rateLimit, r.rateBurst, r.logger)
	}

	r.auditor = security.NewAuditor(r.logger, r.auditEnabled)

	return r
}

// Use registers strategy under its own name.
//
// The strategy must implement ConfigurableStrategy or DirectStrategy. For a
// configurable strategy, Configure is called once with ctx. Any previous
// registration under the same name is replaced.
//
// Errors are of type *Error and match ErrInvalidArgument or ErrConfiguration.
func (r *Registry) Use(ctx context.Context, strategy Strategy) error {
	return r.register(ctx, "", strategy)
}

// UseNamed registers strategy under name, overriding the strategy's own
// name. An empty name falls back to strategy.Name().
func (r *Registry) UseNamed(ctx context.Context, name string, strategy Strategy) error {
	return r.register(ctx, name, strategy)
}

func (r *Registry) register(ctx context.Context, name string, strategy Strategy) (err error) {
	ctx, span := r.tracer.Start(ctx, "refresh.register")
	defer span.End()

	defer func() {
		if err != nil {
			r.recordRegistrationFailure(ctx, span, name, err)
		}
	}()

	if isNilStrategy(strategy) {
		return errNilStrategy()
	}
	if name == "" {
		name = strategy.Name()
	}
	if name == "" {
		return errNameRequired()
	}

	instrumentation.AddStrategyAttributes(span, name, "")

	cfg, shape, err := extractConfig(ctx, strategy)
	if err != nil {
		return err
	}

	client, err := r.newClient(cfg)
	if err != nil {
		return errConfig(err)
	}

	entry := &registeredStrategy{
		name:     name,
		strategy: strategy,
		shape:    shape,
		config:   cfg,
		client:   client,
	}

	r.mu.Lock()
	_, replaced := r.strategies[name]
	r.strategies[name] = entry
	r.mu.Unlock()

	if r.limiter != nil {
		r.limiter.Reset(name)
	}

	r.logger.Info("Registered strategy for token refresh",
		"strategy", name,
		"shape", shape,
		"replaced", replaced)

	instrumentation.AddStrategyAttributes(span, name, shape)
	instrumentation.SetSpanAttributes(span, attribute.String(instrumentation.AttrClientID, cfg.ClientID))
	instrumentation.SetSpanSuccess(span)
	if m := r.metrics(); m != nil {
		m.RecordStrategyRegistered(ctx, name, shape)
	}
	r.auditor.LogStrategyRegistered(name, cfg.ClientID, shape, replaced)

	return nil
}

func (r *Registry) recordRegistrationFailure(ctx context.Context, span trace.Span, name string, err error) {
	kind := "unknown"
	var rerr *Error
	if errors.As(err, &rerr) {
		kind = string(rerr.Kind)
	}

	r.logger.Warn("Strategy registration failed",
		"strategy", name,
		"error_kind", kind,
		"error", err)

	instrumentation.RecordError(span, err)
	instrumentation.SetSpanAttributes(span, attribute.String(instrumentation.AttrErrorKind, kind))
	if m := r.metrics(); m != nil {
		m.RecordRegistrationFailed(ctx, kind)
	}
}

// Has reports whether a strategy is registered under name
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.strategies[name]
	return ok
}

// Names returns the registered strategy names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Len returns the number of registered strategies
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.strategies)
}

// Config returns the normalized client configuration registered under name
func (r *Registry) Config(name string) (ClientConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.strategies[name]
	if !ok {
		return ClientConfig{}, false
	}
	return entry.config, true
}

// RequestNewAccessToken exchanges refreshToken for a new access token using
// the strategy registered under name.
//
// An unknown name fails with ErrNotRegistered and an exhausted rate limit
// with ErrRateLimited; neither contacts the provider. Otherwise the token
// and error of the underlying exchange are returned as received. Nothing
// is retried.
func (r *Registry) RequestNewAccessToken(ctx context.Context, name, refreshToken string) (*oauth2.Token, error) {
	ctx, span := r.tracer.Start(ctx, "refresh.request_new_access_token",
		trace.WithAttributes(
			attribute.String(instrumentation.AttrStrategyName, name),
			attribute.String(instrumentation.AttrGrantType, GrantTypeRefreshToken),
		))
	defer span.End()

	r.mu.RLock()
	entry, ok := r.strategies[name]
	r.mu.RUnlock()

	if !ok {
		err := errNotRegistered(name)
		r.logger.Debug("Refresh requested for unregistered strategy", "strategy", name)
		instrumentation.RecordError(span, err)
		instrumentation.SetSpanAttributes(span, attribute.String(instrumentation.AttrErrorKind, string(KindNotRegistered)))
		return nil, err
	}

	instrumentation.AddStrategyAttributes(span, name, entry.shape)

	if r.limiter != nil && !r.limiter.Allow(name) {
		err := errRateLimited(name)
		r.logger.Warn("Token refresh rate limited", "strategy", name)
		instrumentation.RecordError(span, err)
		instrumentation.SetSpanAttributes(span, attribute.String(instrumentation.AttrErrorKind, string(KindRateLimited)))
		if m := r.metrics(); m != nil {
			m.RecordRateLimitExceeded(ctx, name)
		}
		r.auditor.LogRateLimitExceeded(name)
		return nil, err
	}

	params := url.Values{"grant_type": {GrantTypeRefreshToken}}

	start := time.Now()
	token, err := entry.client.Exchange(ctx, refreshToken, params)
	durationMs := float64(time.Since(start).Microseconds()) / 1000.0

	if m := r.metrics(); m != nil {
		m.RecordTokenRefresh(ctx, name, err == nil, durationMs)
	}

	if err != nil {
		r.logger.Warn("Token refresh failed",
			"strategy", name,
			"duration_ms", durationMs,
			"error", err)
		instrumentation.RecordError(span, err)
		r.auditor.LogRefreshFailure(name, refreshToken, err.Error())
		return token, err
	}

	rotated := token != nil && token.RefreshToken != "" && token.RefreshToken != refreshToken
	tokenType := ""
	if token != nil {
		tokenType = token.Type()
	}

	r.logger.Debug("Token refreshed",
		"strategy", name,
		"rotated", rotated,
		"duration_ms", durationMs)
	instrumentation.AddTokenAttributes(span, tokenType, rotated)
	instrumentation.SetSpanSuccess(span)
	r.auditor.LogTokenRefreshed(name, refreshToken, rotated)

	return token, nil
}

// RequestNewAccessTokenAsync is the callback form of RequestNewAccessToken.
// The request runs on a new goroutine and done is called exactly once with
// either the error or the token fields and the token itself.
func (r *Registry) RequestNewAccessTokenAsync(ctx context.Context, name, refreshToken string, done Callback) {
	if done == nil {
		done = func(string, string, *oauth2.Token, error) {}
	}

	go func() {
		token, err := r.RequestNewAccessToken(ctx, name, refreshToken)
		if err != nil {
			done("", "", nil, err)
			return
		}
		if token == nil {
			done("", "", nil, nil)
			return
		}
		done(token.AccessToken, token.RefreshToken, token, nil)
	}()
}

func (r *Registry) metrics() *instrumentation.Metrics {
	if r.instrumentation == nil {
		return nil
	}
	return r.instrumentation.Metrics()
}
