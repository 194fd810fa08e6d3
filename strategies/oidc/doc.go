// Package oidc provides a refresh strategy whose endpoints are found through
// OpenID Connect discovery.
//
// The strategy implements refresh.ConfigurableStrategy: discovery runs when
// the strategy is registered, so an unreachable or misconfigured issuer
// makes registration fail with a configuration error instead of surfacing
// on the first refresh.
//
// # Security Features
//
//   - SSRF protection for issuer URLs (blocks private IPs, loopback, link-local)
//   - HTTPS enforcement for all discovered endpoints
//   - Discovery document caching with TTL, shareable between strategies
//
// # Example Usage
//
//	strategy, err := oidc.NewStrategy(&oidc.Config{
//	    Name:         "dex",
//	    IssuerURL:    "https://dex.example.com",
//	    ClientID:     os.Getenv("DEX_CLIENT_ID"),
//	    ClientSecret: os.Getenv("DEX_CLIENT_SECRET"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := registry.Use(ctx, strategy); err != nil {
//	    log.Fatal(err) // includes discovery failures
//	}
package oidc
