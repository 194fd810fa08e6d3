package oauth2client

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"github.com/giantswarm/oauth-refresh/internal/util"
)

const (
	// GrantTypeRefreshToken is the grant_type value of the refresh grant
	GrantTypeRefreshToken = "refresh_token"

	// DefaultTimeout is the timeout of the HTTP client used when none is configured
	DefaultTimeout = 30 * time.Second
)

// Config holds the settings a Client is built from
type Config struct {
	// ClientID is the OAuth2 client identifier
	ClientID string

	// ClientSecret is the OAuth2 client secret
	ClientSecret string

	// BaseSite is prefixed to relative AuthorizeURL and AccessTokenURL values
	BaseSite string

	// AuthorizeURL is the authorization endpoint
	AuthorizeURL string

	// AccessTokenURL is the token endpoint used for all grants (required)
	AccessTokenURL string

	// CustomHeaders are set on every token request
	CustomHeaders map[string]string

	// AuthStyle controls how client credentials are sent.
	// The zero value auto-detects; New defaults it to AuthStyleInParams.
	AuthStyle oauth2.AuthStyle

	// HTTPClient is the HTTP client used for token requests (optional)
	HTTPClient *http.Client
}

// Client exchanges codes and refresh tokens at a single token endpoint.
// It is safe for concurrent use.
type Client struct {
	config     *oauth2.Config
	httpClient *http.Client
}

// New creates a new Client
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.AccessTokenURL == "" {
		return nil, fmt.Errorf("access token URL is required")
	}

	authStyle := cfg.AuthStyle
	if authStyle == oauth2.AuthStyleAutoDetect {
		authStyle = oauth2.AuthStyleInParams
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: DefaultTimeout,
		}
	}

	return &Client{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:   util.ResolveEndpoint(cfg.BaseSite, cfg.AuthorizeURL),
				TokenURL:  util.ResolveEndpoint(cfg.BaseSite, cfg.AccessTokenURL),
				AuthStyle: authStyle,
			},
		},
		httpClient: withHeaders(httpClient, maps.Clone(cfg.CustomHeaders)),
	}, nil
}

// Exchange requests a token from the token endpoint.
//
// With grant_type=refresh_token in params, code is treated as a refresh
// token and the refresh grant is performed. Any other grant is sent as an
// authorization code exchange with every param applied to the request.
//
// The token and error are returned exactly as golang.org/x/oauth2 produces
// them; provider errors surface as *oauth2.RetrieveError.
func (c *Client) Exchange(ctx context.Context, code string, params url.Values) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	if params.Get("grant_type") == GrantTypeRefreshToken {
		tokenSource := c.config.TokenSource(ctx, &oauth2.Token{
			RefreshToken: code,
		})
		return tokenSource.Token()
	}

	return c.config.Exchange(ctx, code, authParams(params)...)
}

// AuthCodeURL returns the authorization URL for state with params added
func (c *Client) AuthCodeURL(state string, params url.Values) string {
	return c.config.AuthCodeURL(state, authParams(params)...)
}

// TokenURL returns the resolved token endpoint
func (c *Client) TokenURL() string {
	return c.config.Endpoint.TokenURL
}

// AuthURL returns the resolved authorization endpoint
func (c *Client) AuthURL() string {
	return c.config.Endpoint.AuthURL
}

func authParams(params url.Values) []oauth2.AuthCodeOption {
	opts := make([]oauth2.AuthCodeOption, 0, len(params))
	for key := range params {
		opts = append(opts, oauth2.SetAuthURLParam(key, params.Get(key)))
	}
	return opts
}
