package strategies

import (
	"context"
	"errors"
	"maps"

	refresh "github.com/giantswarm/oauth-refresh"
)

// Compile-time checks for the two strategy shapes.
var (
	_ refresh.DirectStrategy       = (*Direct)(nil)
	_ refresh.ConfigurableStrategy = (*Configurable)(nil)
)

// ErrNoConfigureFunc is returned by Configurable.Configure when no function is set.
var ErrNoConfigureFunc = errors.New("configure function is not set")

// Direct is a strategy with fixed OAuth2 settings.
type Direct struct {
	// StrategyName is returned by Name and used when registering without an explicit name.
	StrategyName string

	// Settings are handed to the registry at registration time.
	Settings refresh.OAuth2Settings
}

// NewDirect creates a Direct strategy. The custom headers are copied.
func NewDirect(name string, settings refresh.OAuth2Settings) *Direct {
	settings.CustomHeaders = maps.Clone(settings.CustomHeaders)
	return &Direct{
		StrategyName: name,
		Settings:     settings,
	}
}

// Name returns the strategy name
func (d *Direct) Name() string {
	return d.StrategyName
}

// OAuth2 returns a copy of the settings
func (d *Direct) OAuth2() *refresh.OAuth2Settings {
	settings := d.Settings
	settings.CustomHeaders = maps.Clone(d.Settings.CustomHeaders)
	return &settings
}

// Configurable is a strategy whose configuration is produced on demand.
type Configurable struct {
	// StrategyName is returned by Name and used when registering without an explicit name.
	StrategyName string

	// ConfigureFunc is called once per registration.
	ConfigureFunc func(ctx context.Context) (*refresh.StrategyConfig, error)
}

// NewConfigurable creates a Configurable strategy
func NewConfigurable(name string, configure func(ctx context.Context) (*refresh.StrategyConfig, error)) *Configurable {
	return &Configurable{
		StrategyName:  name,
		ConfigureFunc: configure,
	}
}

// Name returns the strategy name
func (c *Configurable) Name() string {
	return c.StrategyName
}

// Configure calls ConfigureFunc
func (c *Configurable) Configure(ctx context.Context) (*refresh.StrategyConfig, error) {
	if c.ConfigureFunc == nil {
		return nil, ErrNoConfigureFunc
	}
	return c.ConfigureFunc(ctx)
}

// Static returns a configure function that always yields a copy of cfg.
func Static(cfg refresh.StrategyConfig) func(ctx context.Context) (*refresh.StrategyConfig, error) {
	cfg.CustomHeaders = maps.Clone(cfg.CustomHeaders)
	return func(ctx context.Context) (*refresh.StrategyConfig, error) {
		c := cfg
		c.CustomHeaders = maps.Clone(cfg.CustomHeaders)
		return &c, nil
	}
}
