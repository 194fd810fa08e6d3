package security

import (
	"log/slog"
	"testing"
)

func TestNewRateLimiter(t *testing.T) {
	rl := NewRateLimiter(10, 20, nil)

	if rl == nil {
		t.Fatal("NewRateLimiter() returned nil")
	}

	if rl.rate != 10 {
		t.Errorf("rate = %v, want 10", rl.rate)
	}

	if rl.burst != 20 {
		t.Errorf("burst = %d, want 20", rl.burst)
	}

	if rl.logger == nil {
		t.Error("logger should not be nil")
	}
}

func TestNewRateLimiter_MinimumBurst(t *testing.T) {
	rl := NewRateLimiter(1, 0, slog.Default())

	if rl.burst != 1 {
		t.Errorf("burst = %d, want 1", rl.burst)
	}
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(0.001, 5, slog.Default())

	identifier := "google"

	// First requests up to burst should be allowed
	for i := 0; i < 5; i++ {
		if !rl.Allow(identifier) {
			t.Errorf("Allow() request %d should be allowed", i+1)
		}
	}

	// Next request should be rate limited
	if rl.Allow(identifier) {
		t.Error("Allow() should return false when rate limited")
	}

	stats := rl.GetStats()
	if stats.TotalRejected != 1 {
		t.Errorf("TotalRejected = %d, want 1", stats.TotalRejected)
	}
}

func TestRateLimiter_Allow_MultipleIdentifiers(t *testing.T) {
	rl := NewRateLimiter(0.001, 2, slog.Default())

	for i := 0; i < 2; i++ {
		if !rl.Allow("google") {
			t.Errorf("google request %d should be allowed", i+1)
		}
	}
	if rl.Allow("google") {
		t.Error("google should be rate limited")
	}

	// A different identifier has its own bucket
	if !rl.Allow("github") {
		t.Error("github should be allowed")
	}

	if got := rl.GetStats().CurrentEntries; got != 2 {
		t.Errorf("CurrentEntries = %d, want 2", got)
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiter(0, 1, slog.Default())

	for i := 0; i < 100; i++ {
		if !rl.Allow("google") {
			t.Fatalf("request %d should be allowed when limiting is disabled", i+1)
		}
	}

	if got := rl.GetStats().CurrentEntries; got != 0 {
		t.Errorf("CurrentEntries = %d, want 0", got)
	}
}

func TestRateLimiter_Reset(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, slog.Default())

	if !rl.Allow("google") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("google") {
		t.Fatal("second request should be rate limited")
	}

	rl.Reset("google")

	if !rl.Allow("google") {
		t.Error("request after Reset() should be allowed")
	}
}
