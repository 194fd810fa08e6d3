package oidc

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"time"

	refresh "github.com/giantswarm/oauth-refresh"
)

var _ refresh.ConfigurableStrategy = (*Strategy)(nil)

// StrategyName is the default name of an OIDC strategy
const StrategyName = "oidc"

// Config holds OIDC strategy configuration
type Config struct {
	// Name overrides StrategyName. Set it when registering several issuers.
	Name string

	// IssuerURL is the OpenID provider issuer (required)
	IssuerURL string

	ClientID     string
	ClientSecret string

	// CustomHeaders are sent with every token request
	CustomHeaders map[string]string

	// Discovery is an optional shared discovery client. When nil, one is
	// created from HTTPClient, CacheTTL and Logger.
	Discovery *DiscoveryClient

	HTTPClient *http.Client
	CacheTTL   time.Duration
	Logger     *slog.Logger
}

// Strategy discovers its endpoints from an OpenID provider.
type Strategy struct {
	name          string
	issuerURL     string
	clientID      string
	clientSecret  string
	customHeaders map[string]string
	discovery     *DiscoveryClient
}

// NewStrategy creates an OIDC strategy. No network request is made until
// the strategy is registered.
func NewStrategy(cfg *Config) (*Strategy, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.IssuerURL == "" {
		return nil, fmt.Errorf("issuer URL is required")
	}
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("client ID is required")
	}

	name := cfg.Name
	if name == "" {
		name = StrategyName
	}

	discovery := cfg.Discovery
	if discovery == nil {
		discovery = NewDiscoveryClient(cfg.HTTPClient, cfg.CacheTTL, cfg.Logger)
	}

	return &Strategy{
		name:          name,
		issuerURL:     cfg.IssuerURL,
		clientID:      cfg.ClientID,
		clientSecret:  cfg.ClientSecret,
		customHeaders: maps.Clone(cfg.CustomHeaders),
		discovery:     discovery,
	}, nil
}

// Name returns the strategy name
func (s *Strategy) Name() string {
	return s.name
}

// IssuerURL returns the configured issuer
func (s *Strategy) IssuerURL() string {
	return s.issuerURL
}

// Configure runs discovery and returns the discovered endpoints. It fails
// when the provider states that it does not support the refresh_token grant.
func (s *Strategy) Configure(ctx context.Context) (*refresh.StrategyConfig, error) {
	doc, err := s.discovery.Discover(ctx, s.issuerURL)
	if err != nil {
		return nil, fmt.Errorf("discovery for %q failed: %w", s.issuerURL, err)
	}
	if !doc.SupportsRefresh() {
		return nil, fmt.Errorf("issuer %q does not support the refresh_token grant", s.issuerURL)
	}

	return &refresh.StrategyConfig{
		ClientID:         s.clientID,
		ClientSecret:     s.clientSecret,
		AuthorizationURL: doc.AuthorizationEndpoint,
		TokenURL:         doc.TokenEndpoint,
		CustomHeaders:    maps.Clone(s.customHeaders),
	}, nil
}
