// Package google provides a refresh strategy for Google's OAuth 2.0
// authorization server.
//
// The strategy uses the endpoints published in golang.org/x/oauth2/google.
// Google only returns a refresh token on the first authorization with
// access_type=offline; later refreshes keep the stored refresh token.
//
// Example usage:
//
//	strategy, err := google.NewStrategy(&google.Config{
//	    ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
//	    ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := registry.Use(ctx, strategy); err != nil {
//	    log.Fatal(err)
//	}
package google
