// Package testutil provides testing utilities for the oauth-refresh library.
// It includes a fake OAuth2 token endpoint that records every request.
package testutil
