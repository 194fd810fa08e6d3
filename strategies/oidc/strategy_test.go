package oidc

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	refresh "github.com/giantswarm/oauth-refresh"
)

func TestNewStrategy(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *Config
		wantErr  string
		wantName string
	}{
		{name: "nil config", cfg: nil, wantErr: "config is required"},
		{name: "missing issuer", cfg: &Config{ClientID: "client"}, wantErr: "issuer URL is required"},
		{name: "missing client ID", cfg: &Config{IssuerURL: "https://dex.example.com"}, wantErr: "client ID is required"},
		{name: "default name", cfg: &Config{IssuerURL: "https://dex.example.com", ClientID: "client"}, wantName: "oidc"},
		{name: "custom name", cfg: &Config{Name: "dex", IssuerURL: "https://dex.example.com", ClientID: "client"}, wantName: "dex"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy, err := NewStrategy(tt.cfg)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want to contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewStrategy() error = %v", err)
			}
			if strategy.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", strategy.Name(), tt.wantName)
			}
			if strategy.IssuerURL() != tt.cfg.IssuerURL {
				t.Errorf("IssuerURL() = %q, want %q", strategy.IssuerURL(), tt.cfg.IssuerURL)
			}
		})
	}
}

func TestStrategy_Configure(t *testing.T) {
	server, _ := newDiscoveryServer(t, validDocument)

	strategy, err := NewStrategy(&Config{
		Name:          "dex",
		IssuerURL:     server.URL,
		ClientID:      "client",
		ClientSecret:  "secret",
		CustomHeaders: map[string]string{"X-Tenant": "acme"},
		Discovery:     newTestClient(server.Client(), time.Hour),
	})
	if err != nil {
		t.Fatalf("NewStrategy() error = %v", err)
	}

	cfg, err := strategy.Configure(context.Background())
	if err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	if cfg.TokenURL != server.URL+"/token" {
		t.Errorf("TokenURL = %q, want %q", cfg.TokenURL, server.URL+"/token")
	}
	if cfg.AuthorizationURL != server.URL+"/auth" {
		t.Errorf("AuthorizationURL = %q, want %q", cfg.AuthorizationURL, server.URL+"/auth")
	}
	if cfg.BaseSite != "" {
		t.Errorf("BaseSite = %q, want empty", cfg.BaseSite)
	}
	if cfg.ClientID != "client" || cfg.ClientSecret != "secret" {
		t.Error("client credentials not carried over")
	}
	if cfg.CustomHeaders["X-Tenant"] != "acme" {
		t.Errorf("CustomHeaders = %v", cfg.CustomHeaders)
	}
}

func TestStrategy_Configure_RefreshUnsupported(t *testing.T) {
	server, _ := newDiscoveryServer(t, func(issuer string) DiscoveryDocument {
		d := validDocument(issuer)
		d.GrantTypesSupported = []string{"authorization_code"}
		return d
	})

	strategy, err := NewStrategy(&Config{
		IssuerURL: server.URL,
		ClientID:  "client",
		Discovery: newTestClient(server.Client(), time.Hour),
	})
	if err != nil {
		t.Fatalf("NewStrategy() error = %v", err)
	}

	_, err = strategy.Configure(context.Background())
	if err == nil || !strings.Contains(err.Error(), "does not support the refresh_token grant") {
		t.Errorf("Configure() error = %v, want unsupported grant", err)
	}
}

func TestStrategy_RegistrationFailureIsConfigurationError(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	strategy, err := NewStrategy(&Config{
		Name:      "dex",
		IssuerURL: server.URL,
		ClientID:  "client",
		Discovery: newTestClient(server.Client(), time.Hour),
	})
	if err != nil {
		t.Fatalf("NewStrategy() error = %v", err)
	}

	registry := refresh.NewRegistry(refresh.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	err = registry.Use(context.Background(), strategy)
	if !errors.Is(err, refresh.ErrConfiguration) {
		t.Fatalf("Use() error = %v, want ErrConfiguration", err)
	}
	if registry.Has("dex") {
		t.Error("strategy should not be registered after discovery failure")
	}
}

func TestStrategy_RefreshThroughDiscoveredEndpoint(t *testing.T) {
	var (
		mu   sync.Mutex
		form map[string]string
	)

	var server *httptest.Server
	server = httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case wellKnownPath:
			_ = json.NewEncoder(w).Encode(validDocument(server.URL))
		case "/token":
			_ = r.ParseForm()
			mu.Lock()
			form = map[string]string{
				"grant_type":    r.PostForm.Get("grant_type"),
				"refresh_token": r.PostForm.Get("refresh_token"),
				"client_id":     r.PostForm.Get("client_id"),
				"client_secret": r.PostForm.Get("client_secret"),
			}
			mu.Unlock()
			_ = json.NewEncoder(w).Encode(map[string]any{
				"access_token": "dex-access-token",
				"token_type":   "bearer",
				"expires_in":   3600,
				"id_token":     "dex-id-token",
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	strategy, err := NewStrategy(&Config{
		Name:         "dex",
		IssuerURL:    server.URL,
		ClientID:     "client",
		ClientSecret: "secret",
		Discovery:    newTestClient(server.Client(), time.Hour),
	})
	if err != nil {
		t.Fatalf("NewStrategy() error = %v", err)
	}

	registry := refresh.NewRegistry(
		refresh.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		refresh.WithHTTPClient(server.Client()),
	)
	if err := registry.Use(context.Background(), strategy); err != nil {
		t.Fatalf("Use() error = %v", err)
	}

	token, err := registry.RequestNewAccessToken(context.Background(), "dex", "dex-refresh-token")
	if err != nil {
		t.Fatalf("RequestNewAccessToken() error = %v", err)
	}
	if token.AccessToken != "dex-access-token" {
		t.Errorf("AccessToken = %q, want %q", token.AccessToken, "dex-access-token")
	}
	// The provider did not rotate, so the presented refresh token is kept
	if token.RefreshToken != "dex-refresh-token" {
		t.Errorf("RefreshToken = %q, want %q", token.RefreshToken, "dex-refresh-token")
	}
	if idToken, _ := token.Extra("id_token").(string); idToken != "dex-id-token" {
		t.Errorf("id_token = %q, want %q", idToken, "dex-id-token")
	}

	mu.Lock()
	defer mu.Unlock()
	want := map[string]string{
		"grant_type":    "refresh_token",
		"refresh_token": "dex-refresh-token",
		"client_id":     "client",
		"client_secret": "secret",
	}
	for k, v := range want {
		if form[k] != v {
			t.Errorf("form[%s] = %q, want %q", k, form[k], v)
		}
	}
}
