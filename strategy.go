package refresh

import (
	"context"
	"net/url"

	"golang.org/x/oauth2"
)

// Strategy is an authentication strategy for one OAuth2 provider
// integration. To be registered it must also implement DirectStrategy or
// ConfigurableStrategy.
type Strategy interface {
	// Name returns the strategy's own name (e.g., "google"). It is used as
	// the registry key when no explicit name is given and may be empty.
	Name() string
}

// OAuth2Settings are the client settings a DirectStrategy carries.
type OAuth2Settings struct {
	// ClientID is the OAuth2 client identifier
	ClientID string

	// ClientSecret is the OAuth2 client secret
	ClientSecret string

	// BaseSite is the provider root URL that relative endpoint paths are
	// resolved against. May be empty when the endpoints are absolute.
	BaseSite string

	// AuthorizeURL is the authorization endpoint (absolute or relative to BaseSite)
	AuthorizeURL string

	// AccessTokenURL is the token endpoint (absolute or relative to BaseSite)
	AccessTokenURL string

	// RefreshURL is an optional refresh-specific token endpoint.
	// When empty, AccessTokenURL is used for refresh requests.
	RefreshURL string

	// CustomHeaders are added to every token request
	CustomHeaders map[string]string
}

// DirectStrategy exposes its OAuth2 client settings directly.
type DirectStrategy interface {
	Strategy

	// OAuth2 returns the strategy's client settings. A nil return means the
	// strategy has no OAuth2 client and cannot be registered.
	OAuth2() *OAuth2Settings
}

// StrategyConfig is the configuration a ConfigurableStrategy yields.
type StrategyConfig struct {
	ClientID         string
	ClientSecret     string
	BaseSite         string // optional, defaults to ""
	AuthorizationURL string
	TokenURL         string
	CustomHeaders    map[string]string // optional
}

// ConfigurableStrategy produces its configuration on demand, for example by
// running OIDC discovery.
type ConfigurableStrategy interface {
	Strategy

	// Configure returns the strategy configuration. It is called once, at
	// registration time.
	Configure(ctx context.Context) (*StrategyConfig, error)
}

// ClientConfig is the normalized configuration an Exchanger is built from.
type ClientConfig struct {
	ClientID      string
	ClientSecret  string
	BaseSite      string
	AuthorizeURL  string
	RefreshURL    string
	CustomHeaders map[string]string
}

// Exchanger performs the token request against the provider.
//
// When params carries grant_type=refresh_token, code is the refresh token.
// The returned token and error are handed to the caller of a refresh
// request unchanged.
type Exchanger interface {
	Exchange(ctx context.Context, code string, params url.Values) (*oauth2.Token, error)
}

// ClientFactory builds an Exchanger for a registered strategy.
type ClientFactory func(cfg ClientConfig) (Exchanger, error)

// Callback receives the result of RequestNewAccessTokenAsync.
// On failure only err is set. On success raw is the token returned by the
// exchanger; raw.Extra exposes additional fields of the provider response.
type Callback func(accessToken, refreshToken string, raw *oauth2.Token, err error)
