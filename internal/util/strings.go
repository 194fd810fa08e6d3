package util

import (
	"net/url"
	"strings"
)

// ResolveEndpoint resolves an OAuth2 endpoint against a provider base site.
// Absolute endpoints are returned unchanged, as is any endpoint when the base
// site is empty. Otherwise the two are joined with exactly one slash.
//
// Example:
//
//	ResolveEndpoint("https://example.com", "/oauth/token")  // "https://example.com/oauth/token"
//	ResolveEndpoint("https://example.com/", "oauth/token")  // "https://example.com/oauth/token"
//	ResolveEndpoint("", "https://example.com/token")        // "https://example.com/token"
//	ResolveEndpoint("https://a.com", "https://b.com/token") // "https://b.com/token"
func ResolveEndpoint(baseSite, endpoint string) string {
	if baseSite == "" || IsAbsoluteURL(endpoint) {
		return endpoint
	}
	if endpoint == "" {
		return baseSite
	}
	return strings.TrimRight(baseSite, "/") + "/" + strings.TrimLeft(endpoint, "/")
}

// IsAbsoluteURL reports whether s parses as a URL with a scheme and host.
func IsAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
