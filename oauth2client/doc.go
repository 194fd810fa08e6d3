// Package oauth2client provides the default token exchanger used by the
// refresh registry, built on golang.org/x/oauth2.
//
// A Client is constructed from the same fields an OAuth2 strategy carries:
// client credentials, a base site, an authorize URL, a token URL and
// optional custom headers. Relative endpoints are resolved against the base
// site. Client credentials are sent in the request body by default, and the
// custom headers are attached to every token request.
//
// # Quick Start
//
//	client, err := oauth2client.New(&oauth2client.Config{
//	    ClientID:       "client-id",
//	    ClientSecret:   "client-secret",
//	    BaseSite:       "https://auth.example.com",
//	    AuthorizeURL:   "/oauth/authorize",
//	    AccessTokenURL: "/oauth/token",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	params := url.Values{"grant_type": {oauth2client.GrantTypeRefreshToken}}
//	token, err := client.Exchange(ctx, storedRefreshToken, params)
package oauth2client
