package oidc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultCacheTTL is how long discovery documents are cached when no TTL is given
	DefaultCacheTTL = 1 * time.Hour

	// DefaultDiscoveryTimeout is the timeout of the default discovery HTTP client
	DefaultDiscoveryTimeout = 10 * time.Second

	// maxDocumentSize bounds the discovery response body
	maxDocumentSize = 1 << 20

	wellKnownPath = "/.well-known/openid-configuration"
)

// DiscoveryDocument holds the OpenID provider metadata needed for refresh.
type DiscoveryDocument struct {
	Issuer                            string   `json:"issuer"`
	AuthorizationEndpoint             string   `json:"authorization_endpoint"`
	TokenEndpoint                     string   `json:"token_endpoint"`
	RevocationEndpoint                string   `json:"revocation_endpoint,omitempty"`
	GrantTypesSupported               []string `json:"grant_types_supported,omitempty"`
	TokenEndpointAuthMethodsSupported []string `json:"token_endpoint_auth_methods_supported,omitempty"`
}

// SupportsRefresh reports whether the provider accepts the refresh_token
// grant. Providers that do not list their grant types are assumed to.
func (d *DiscoveryDocument) SupportsRefresh() bool {
	if len(d.GrantTypesSupported) == 0 {
		return true
	}
	return slices.Contains(d.GrantTypesSupported, "refresh_token")
}

type cachedDocument struct {
	document  *DiscoveryDocument
	fetchedAt time.Time
}

// DiscoveryClient fetches and caches OIDC discovery documents.
// It is safe for concurrent use and may be shared between strategies.
type DiscoveryClient struct {
	httpClient     *http.Client
	cache          sync.Map // issuerURL -> *cachedDocument
	cacheTTL       time.Duration
	logger         *slog.Logger
	now            func() time.Time
	skipValidation bool // tests only: allows httptest servers on loopback
}

// NewDiscoveryClient creates a discovery client.
//
// Parameters:
//   - httpClient: HTTP client to use for requests (nil uses a client with DefaultDiscoveryTimeout)
//   - cacheTTL: time-to-live for cached documents (0 uses DefaultCacheTTL)
//   - logger: logger for debug messages (nil uses slog.Default())
func NewDiscoveryClient(httpClient *http.Client, cacheTTL time.Duration, logger *slog.Logger) *DiscoveryClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultDiscoveryTimeout}
	}
	if cacheTTL == 0 {
		cacheTTL = DefaultCacheTTL
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DiscoveryClient{
		httpClient: httpClient,
		cacheTTL:   cacheTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// Discover fetches the discovery document of issuerURL, serving it from the
// cache while it is fresh.
func (c *DiscoveryClient) Discover(ctx context.Context, issuerURL string) (*DiscoveryDocument, error) {
	// SECURITY: Validate issuer URL before making request
	if !c.skipValidation {
		if err := ValidateIssuerURL(issuerURL); err != nil {
			return nil, fmt.Errorf("invalid issuer URL: %w", err)
		}
	}

	if cached, ok := c.cache.Load(issuerURL); ok {
		doc := cached.(*cachedDocument)
		if c.now().Sub(doc.fetchedAt) < c.cacheTTL {
			c.logger.Debug("OIDC discovery cache hit", "issuer", issuerURL)
			return doc.document, nil
		}
		c.logger.Debug("OIDC discovery cache expired", "issuer", issuerURL)
	}

	discoveryURL := strings.TrimSuffix(issuerURL, "/") + wellKnownPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, discoveryURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create discovery request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch OIDC discovery document: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OIDC discovery failed with status %d", resp.StatusCode)
	}

	var doc DiscoveryDocument
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxDocumentSize)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode discovery document: %w", err)
	}

	if err := validateDocument(issuerURL, &doc); err != nil {
		return nil, fmt.Errorf("invalid discovery document: %w", err)
	}

	c.cache.Store(issuerURL, &cachedDocument{
		document:  &doc,
		fetchedAt: c.now(),
	})

	c.logger.Debug("OIDC discovery successful",
		"issuer", issuerURL,
		"token_endpoint", doc.TokenEndpoint)

	return &doc, nil
}

// ClearCache drops all cached documents
func (c *DiscoveryClient) ClearCache() {
	count := 0
	c.cache.Range(func(key, _ any) bool {
		c.cache.Delete(key)
		count++
		return true
	})
	c.logger.Debug("OIDC discovery cache cleared", "entries_removed", count)
}

// validateDocument checks that the document belongs to issuerURL and that
// every endpoint uses HTTPS.
func validateDocument(issuerURL string, doc *DiscoveryDocument) error {
	if strings.TrimSuffix(doc.Issuer, "/") != strings.TrimSuffix(issuerURL, "/") {
		return fmt.Errorf("issuer mismatch: got %q, want %q", doc.Issuer, issuerURL)
	}

	required := []struct {
		name string
		url  string
	}{
		{"authorization_endpoint", doc.AuthorizationEndpoint},
		{"token_endpoint", doc.TokenEndpoint},
	}
	for _, endpoint := range required {
		if endpoint.url == "" {
			return fmt.Errorf("%s is required but missing", endpoint.name)
		}
		if !strings.HasPrefix(endpoint.url, "https://") {
			return fmt.Errorf("%s must use HTTPS: %s", endpoint.name, endpoint.url)
		}
	}

	if doc.RevocationEndpoint != "" && !strings.HasPrefix(doc.RevocationEndpoint, "https://") {
		return fmt.Errorf("revocation_endpoint must use HTTPS if present: %s", doc.RevocationEndpoint)
	}

	return nil
}
