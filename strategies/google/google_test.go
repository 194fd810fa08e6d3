package google

import (
	"strings"
	"testing"

	"golang.org/x/oauth2/google"
)

func TestNewStrategy(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *Config
		wantErr  string
		wantName string
	}{
		{
			name:    "nil config",
			cfg:     nil,
			wantErr: "config is required",
		},
		{
			name:    "missing client ID",
			cfg:     &Config{ClientSecret: "secret"},
			wantErr: "client ID is required",
		},
		{
			name:    "missing client secret",
			cfg:     &Config{ClientID: "client"},
			wantErr: "client secret is required",
		},
		{
			name:     "default name",
			cfg:      &Config{ClientID: "client", ClientSecret: "secret"},
			wantName: "google",
		},
		{
			name:     "custom name",
			cfg:      &Config{Name: "google-workspace", ClientID: "client", ClientSecret: "secret"},
			wantName: "google-workspace",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy, err := NewStrategy(tt.cfg)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error = %q, want to contain %q", err.Error(), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewStrategy() error = %v", err)
			}
			if strategy.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", strategy.Name(), tt.wantName)
			}
		})
	}
}

func TestNewStrategy_Endpoints(t *testing.T) {
	strategy, err := NewStrategy(&Config{
		ClientID:      "client",
		ClientSecret:  "secret",
		CustomHeaders: map[string]string{"X-Goog-User-Project": "project"},
	})
	if err != nil {
		t.Fatalf("NewStrategy() error = %v", err)
	}

	settings := strategy.OAuth2()
	if settings.AccessTokenURL != google.Endpoint.TokenURL {
		t.Errorf("AccessTokenURL = %q, want %q", settings.AccessTokenURL, google.Endpoint.TokenURL)
	}
	if settings.AuthorizeURL != google.Endpoint.AuthURL {
		t.Errorf("AuthorizeURL = %q, want %q", settings.AuthorizeURL, google.Endpoint.AuthURL)
	}
	if settings.RefreshURL != "" {
		t.Errorf("RefreshURL = %q, want empty", settings.RefreshURL)
	}
	if settings.BaseSite != "" {
		t.Errorf("BaseSite = %q, want empty", settings.BaseSite)
	}
	if settings.ClientID != "client" || settings.ClientSecret != "secret" {
		t.Error("client credentials not carried over")
	}
	if settings.CustomHeaders["X-Goog-User-Project"] != "project" {
		t.Errorf("CustomHeaders = %v", settings.CustomHeaders)
	}
}
