// Package refresh exchanges stored OAuth2 refresh tokens for new access
// tokens using strategies registered once at startup.
//
// A strategy describes one OAuth2 provider integration. It is registered in
// one of two shapes:
//
//   - DirectStrategy exposes its client settings (client credentials, base
//     site, authorize URL, access token URL, an optional refresh URL and
//     custom headers) directly.
//   - ConfigurableStrategy produces a StrategyConfig when asked, for example
//     after OIDC discovery.
//
// Registration builds a token exchanger for the strategy; later refresh
// requests only consult that exchanger. Ready-made strategies live in the
// strategies package and its subpackages.
//
// # Quick Start
//
//	registry := refresh.NewRegistry(refresh.WithLogger(logger))
//
//	strategy, err := github.NewStrategy(&github.Config{
//	    ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
//	    ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := registry.Use(ctx, strategy); err != nil {
//	    log.Fatal(err)
//	}
//
//	token, err := registry.RequestNewAccessToken(ctx, "github", storedRefreshToken)
//	if err != nil {
//	    // *refresh.Error for unknown strategies and rate limiting,
//	    // otherwise the error returned by the token endpoint
//	}
//
// The callback form delivers the result exactly once from a new goroutine:
//
//	registry.RequestNewAccessTokenAsync(ctx, "github", storedRefreshToken,
//	    func(accessToken, refreshToken string, raw *oauth2.Token, err error) {
//	        // ...
//	    })
//
// # What this package does not do
//
// Tokens are not stored or revoked, refreshes are never scheduled or
// retried, and concurrent refreshes of the same token are not deduplicated.
package refresh
