// Package strategies provides ready-made values for the two strategy shapes
// accepted by refresh.Registry.
//
// Direct carries fixed OAuth2 settings and satisfies refresh.DirectStrategy.
// Configurable produces its configuration on demand through a function and
// satisfies refresh.ConfigurableStrategy.
//
// Provider-specific constructors live in the subpackages:
//
//   - google: Google OAuth 2.0 endpoints
//   - github: GitHub and GitHub Enterprise endpoints
//   - oidc: endpoints found through OpenID Connect discovery
//
// Example usage:
//
//	internal := strategies.NewDirect("internal", refresh.OAuth2Settings{
//	    ClientID:       os.Getenv("CLIENT_ID"),
//	    ClientSecret:   os.Getenv("CLIENT_SECRET"),
//	    BaseSite:       "https://auth.internal.example.com",
//	    AuthorizeURL:   "/oauth/authorize",
//	    AccessTokenURL: "/oauth/token",
//	})
//	if err := registry.Use(ctx, internal); err != nil {
//	    log.Fatal(err)
//	}
package strategies
