package config

import (
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Fatalf("expected addr %q, got %q", ":8080", cfg.Addr)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("expected session ttl 30m, got %s", cfg.SessionTTL)
	}
	if cfg.MaxSessions != 10000 {
		t.Fatalf("expected max sessions 10000, got %d", cfg.MaxSessions)
	}
	if !cfg.Telemetry {
		t.Fatal("expected telemetry enabled by default")
	}
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("CALC_ADDR", "127.0.0.1:9090")
	t.Setenv("CALC_SESSION_TTL", "90s")
	t.Setenv("CALC_MAX_SESSIONS", "3")
	t.Setenv("CALC_TELEMETRY_ENABLED", "false")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Addr != "127.0.0.1:9090" {
		t.Fatalf("expected addr override, got %q", cfg.Addr)
	}
	if cfg.SessionTTL != 90*time.Second {
		t.Fatalf("expected session ttl 90s, got %s", cfg.SessionTTL)
	}
	if cfg.MaxSessions != 3 {
		t.Fatalf("expected max sessions 3, got %d", cfg.MaxSessions)
	}
	if cfg.Telemetry {
		t.Fatal("expected telemetry disabled")
	}
}

func TestParseRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "malformed duration", key: "CALC_SESSION_TTL", value: "soon"},
		{name: "negative ttl", key: "CALC_SESSION_TTL", value: "-1m"},
		{name: "zero sweep interval", key: "CALC_SWEEP_INTERVAL", value: "0s"},
		{name: "negative max sessions", key: "CALC_MAX_SESSIONS", value: "-1"},
		{name: "malformed bool", key: "CALC_TELEMETRY_ENABLED", value: "maybe"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Parse(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.value)
			}
		})
	}
}
