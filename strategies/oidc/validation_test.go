package oidc

import (
	"strings"
	"testing"
)

func TestValidateIssuerURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr string
	}{
		{name: "valid", url: "https://dex.example.com"},
		{name: "valid with path", url: "https://login.example.com/realms/main"},
		{name: "valid public IP", url: "https://8.8.8.8"},
		{name: "http", url: "http://dex.example.com", wantErr: "must use HTTPS"},
		{name: "no scheme", url: "dex.example.com", wantErr: "must use HTTPS"},
		{name: "no host", url: "https://", wantErr: "must have a hostname"},
		{name: "localhost", url: "https://localhost:5556", wantErr: "loopback"},
		{name: "loopback IPv4", url: "https://127.0.0.1", wantErr: "loopback"},
		{name: "loopback IPv6", url: "https://[::1]", wantErr: "loopback"},
		{name: "private 10/8", url: "https://10.0.0.1", wantErr: "private IP"},
		{name: "private 192.168/16", url: "https://192.168.1.1", wantErr: "private IP"},
		{name: "metadata service", url: "https://169.254.169.254", wantErr: "link-local"},
		{name: "unspecified", url: "https://0.0.0.0", wantErr: "unspecified"},
		{name: "unparseable", url: "https://exa mple.com\x7f", wantErr: "invalid issuer URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIssuerURL(tt.url)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateIssuerURL(%q) error = %v", tt.url, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateIssuerURL(%q) expected error", tt.url)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}
