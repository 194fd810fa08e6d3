package google

import (
	"fmt"

	"golang.org/x/oauth2/google"

	refresh "github.com/giantswarm/oauth-refresh"
	"github.com/giantswarm/oauth-refresh/strategies"
)

// StrategyName is the default name of the Google strategy
const StrategyName = "google"

// Config holds Google OAuth configuration
type Config struct {
	// Name overrides StrategyName, e.g. to register several Google clients.
	Name string

	ClientID     string
	ClientSecret string

	// CustomHeaders are sent with every token request
	CustomHeaders map[string]string
}

// NewStrategy creates a Google strategy
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

	return strategies.NewDirect(name, refresh.OAuth2Settings{
		ClientID:       cfg.ClientID,
		ClientSecret:   cfg.ClientSecret,
		AuthorizeURL:   google.Endpoint.AuthURL,
		AccessTokenURL: google.Endpoint.TokenURL,
		CustomHeaders:  cfg.CustomHeaders,
	}), nil
}
