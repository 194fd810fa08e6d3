// Package github provides a refresh strategy for GitHub OAuth.
//
// Only GitHub Apps with expiring user tokens issue refresh tokens; OAuth
// Apps issue non-expiring access tokens and the token endpoint rejects
// refresh requests for them.
//
// The strategy targets github.com through the endpoints published in
// golang.org/x/oauth2/github. Set EnterpriseURL to target a GitHub
// Enterprise Server instead; its endpoints are resolved against that site.
//
// GitHub answers token requests with form-encoded bodies unless JSON is
// requested, so the strategy always sends "Accept: application/json".
//
// Example usage:
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
package github
