package refresh

import (
	"context"
	"errors"
	"maps"
	"reflect"
)

// Strategy shapes, used as log and metric attributes
const (
	shapeDirect       = "direct"
	shapeConfigurable = "configurable"
)

// isNilStrategy reports whether s is a nil interface or wraps a nil pointer.
func isNilStrategy(s Strategy) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Interface, reflect.Slice, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// extractConfig dispatches over the two strategy shapes and returns the
// normalized client configuration along with the shape that produced it.
// The configurable shape takes precedence when a strategy implements both.
func extractConfig(ctx context.Context, s Strategy) (ClientConfig, string, error) {
	if cs, ok := s.(ConfigurableStrategy); ok {
		cfg, err := fromConfigurable(ctx, cs)
		return cfg, shapeConfigurable, err
	}

	if ds, ok := s.(DirectStrategy); ok {
		if settings := ds.OAuth2(); settings != nil {
			cfg, err := fromDirect(settings)
			return cfg, shapeDirect, err
		}
	}

	return ClientConfig{}, "", errNotOAuth2Strategy()
}

func fromConfigurable(ctx context.Context, s ConfigurableStrategy) (ClientConfig, error) {
	sc, err := s.Configure(ctx)
	if err != nil {
		return ClientConfig{}, errConfig(err)
	}
	if sc == nil {
		return ClientConfig{}, errConfig(errors.New("strategy returned no configuration"))
	}

	cfg := ClientConfig{
		ClientID:      sc.ClientID,
		ClientSecret:  sc.ClientSecret,
		BaseSite:      sc.BaseSite,
		AuthorizeURL:  sc.AuthorizationURL,
		RefreshURL:    sc.TokenURL,
		CustomHeaders: maps.Clone(sc.CustomHeaders),
	}
	return cfg, validateConfig(cfg)
}

func fromDirect(settings *OAuth2Settings) (ClientConfig, error) {
	refreshURL := settings.RefreshURL
	if refreshURL == "" {
		refreshURL = settings.AccessTokenURL
	}

	cfg := ClientConfig{
		ClientID:      settings.ClientID,
		ClientSecret:  settings.ClientSecret,
		BaseSite:      settings.BaseSite,
		AuthorizeURL:  settings.AuthorizeURL,
		RefreshURL:    refreshURL,
		CustomHeaders: maps.Clone(settings.CustomHeaders),
	}
	return cfg, validateConfig(cfg)
}

// validateConfig rejects configurations that could never perform a refresh.
// The authorize URL is not needed for refresh and is not checked.
func validateConfig(cfg ClientConfig) error {
	if cfg.RefreshURL == "" {
		return errConfig(errors.New("token URL is required"))
	}
	return nil
}
