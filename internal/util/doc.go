// Package util provides common utility functions used across the oauth-refresh library.
//
// Key utilities:
//   - ResolveEndpoint: Joins a provider base site with an endpoint path
package util
