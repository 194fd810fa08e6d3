package github

import (
	"fmt"
	"maps"
	"net/url"
	"strings"

	oauthgithub "golang.org/x/oauth2/github"

	refresh "github.com/giantswarm/oauth-refresh"
	"github.com/giantswarm/oauth-refresh/strategies"
)

// StrategyName is the default name of the GitHub strategy
const StrategyName = "github"

// GitHub Enterprise Server paths, relative to the enterprise site
const (
	enterpriseAuthorizePath = "/login/oauth/authorize"
	enterpriseTokenPath     = "/login/oauth/access_token"
)

// Config holds GitHub OAuth configuration.
type Config struct {
	// Name overrides StrategyName.
	Name string

	// ClientID is the GitHub App client ID.
	ClientID string

	// ClientSecret is the GitHub App client secret.
	ClientSecret string

	// EnterpriseURL is the base URL of a GitHub Enterprise Server,
	// e.g. "https://github.example.com". Empty means github.com.
	EnterpriseURL string

	// CustomHeaders are sent with every token request, in addition to
	// "Accept: application/json".
	CustomHeaders map[string]string
}

// NewStrategy creates a GitHub strategy.
func NewStrategy(cfg *Config) (*strategies.Direct, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("client ID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, fmt.Errorf("client secret is required")
	}

	name := cfg.Name
	if name == "" {
		name = StrategyName
	}

	headers := map[string]string{"Accept": "application/json"}
	maps.Copy(headers, cfg.CustomHeaders)

	settings := refresh.OAuth2Settings{
		ClientID:       cfg.ClientID,
		ClientSecret:   cfg.ClientSecret,
		AuthorizeURL:   oauthgithub.Endpoint.AuthURL,
		AccessTokenURL: oauthgithub.Endpoint.TokenURL,
		CustomHeaders:  headers,
	}

	if cfg.EnterpriseURL != "" {
		site, err := validateEnterpriseURL(cfg.EnterpriseURL)
		if err != nil {
			return nil, err
		}
		settings.BaseSite = site
		settings.AuthorizeURL = enterpriseAuthorizePath
		settings.AccessTokenURL = enterpriseTokenPath
	}

	return strategies.NewDirect(name, settings), nil
}

// validateEnterpriseURL returns the enterprise site without a trailing slash
func validateEnterpriseURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid enterprise URL: %w", err)
	}
	if u.Scheme != "https" {
		return "", fmt.Errorf("enterprise URL must use HTTPS, got %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("enterprise URL must have a hostname")
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return "", fmt.Errorf("enterprise URL must not contain a query or fragment")
	}
	return strings.TrimSuffix(raw, "/"), nil
}
