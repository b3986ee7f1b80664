package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func parseWith(t *testing.T, vars map[string]string) AppConfig {
	t.Helper()
	var cfg AppConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()
	return cfg
}

func TestAppConfig_Defaults(t *testing.T) {
	t.Setenv("NODE_ENV", "")
	cfg := parseWith(t, map[string]string{})

	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %q, want :8080", cfg.HTTP.Addr)
	}
	if cfg.API.BaseURL != "http://localhost:5000/api" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.FilesBaseURL != "http://localhost:5000" {
		t.Errorf("API.FilesBaseURL = %q", cfg.API.FilesBaseURL)
	}
	if cfg.API.Timeout != 15*time.Second {
		t.Errorf("API.Timeout = %v, want 15s", cfg.API.Timeout)
	}
	if cfg.API.ErrorMessagePath != "message || error" {
		t.Errorf("API.ErrorMessagePath = %q", cfg.API.ErrorMessagePath)
	}
	if cfg.Session.Backend != SessionBackendRedis {
		t.Errorf("Session.Backend = %q, want redis", cfg.Session.Backend)
	}
	if cfg.Session.CookieName != "chemclass_sid" {
		t.Errorf("Session.CookieName = %q", cfg.Session.CookieName)
	}
	if cfg.Session.TTL != 168*time.Hour {
		t.Errorf("Session.TTL = %v, want 168h", cfg.Session.TTL)
	}
	if cfg.Session.KeyPrefix != "chemclass:session:" {
		t.Errorf("Session.KeyPrefix = %q", cfg.Session.KeyPrefix)
	}
	if cfg.Redis.URI != "localhost:6379" {
		t.Errorf("Redis.URI = %q", cfg.Redis.URI)
	}
	if cfg.Observability.Metrics.IsEnabled() {
		t.Error("metrics should be disabled by default")
	}
	if cfg.IsDev {
		t.Error("IsDev should default to false")
	}
	if !cfg.UsesRedis() {
		t.Error("redis backend should require redis")
	}
	if cfg.HTTP.SecureCookies() {
		t.Error("http base URL should not mark cookies secure")
	}
}

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "")
	cfg := parseWith(t, map[string]string{
		"APP_BASE_URL":           "https://chemclass.example.com/",
		"API_BASE_URL":           " https://api.example.com/api/ ",
		"API_TIMEOUT":            "3s",
		"API_ERROR_MESSAGE_PATH": "errors[0].detail",
		"SESSION_BACKEND":        "Memory",
		"SESSION_TTL":            "10s",
		"REDIS_URI":              "redis:6379",
		"REDIS_USE_CLUSTER":      "true",
		"REDIS_CLUSTER_NODES":    "a:7000,b:7001",
		"HTTP_COMPRESSION_LEVEL": "42",
	})

	if cfg.HTTP.BaseURL != "https://chemclass.example.com" || !cfg.HTTP.SecureCookies() {
		t.Errorf("HTTP.BaseURL = %q", cfg.HTTP.BaseURL)
	}
	if cfg.API.BaseURL != "https://api.example.com/api" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Errorf("API.Timeout = %v", cfg.API.Timeout)
	}
	if cfg.API.ErrorMessagePath != "errors[0].detail" {
		t.Errorf("API.ErrorMessagePath = %q", cfg.API.ErrorMessagePath)
	}
	if cfg.Session.Backend != SessionBackendMemory || cfg.UsesRedis() {
		t.Errorf("Session.Backend = %q", cfg.Session.Backend)
	}
	if cfg.Session.TTL != time.Minute {
		t.Errorf("Session.TTL = %v, want clamp to 1m", cfg.Session.TTL)
	}
	if !cfg.Redis.UseCluster || len(cfg.Redis.ClusterNodes) != 2 {
		t.Errorf("Redis cluster config = %+v", cfg.Redis)
	}
	if cfg.HTTP.CompressionLevel != 9 {
		t.Errorf("HTTP.CompressionLevel = %d, want 9", cfg.HTTP.CompressionLevel)
	}
}

func TestAppConfig_InvalidSessionBackend(t *testing.T) {
	var cfg AppConfig
	err := env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{"SESSION_BACKEND": "cookie"}})
	if err == nil {
		t.Fatal("expected an error for an unknown session backend")
	}
}

func TestAppConfig_DetectDevMode(t *testing.T) {
	t.Setenv("NODE_ENV", "development")
	cfg := parseWith(t, map[string]string{})
	if !cfg.IsDev {
		t.Error("NODE_ENV=development should enable dev mode")
	}

	t.Setenv("NODE_ENV", "")
	cfg = parseWith(t, map[string]string{"DEV": "true"})
	if !cfg.IsDev {
		t.Error("DEV=true should enable dev mode")
	}
}

func TestAPIConfig_SanitizeRestoresDefaults(t *testing.T) {
	c := APIConfig{BaseURL: "  ", Timeout: -1, ErrorMessagePath: " "}
	c.Sanitize()
	if c.BaseURL != defaultAPIBaseURL || c.Timeout != defaultAPITimeout || c.ErrorMessagePath != defaultAPIErrorMessagePath {
		t.Errorf("Sanitize() = %+v", c)
	}
	if c.FilesBaseURL != defaultAPIFilesBaseURL {
		t.Errorf("FilesBaseURL = %q", c.FilesBaseURL)
	}
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	tests := []struct {
		name        string
		input       ObservabilityMetricsConfig
		wantEnabled bool
		wantPrefix  string
	}{
		{
			name:        "enabled with address",
			input:       ObservabilityMetricsConfig{Enabled: true, StatsdAddress: " 127.0.0.1:8125 "},
			wantEnabled: true,
			wantPrefix:  "chemclass",
		},
		{
			name:        "blank address disables",
			input:       ObservabilityMetricsConfig{Enabled: true, StatsdAddress: "  ", Prefix: "web."},
			wantEnabled: false,
			wantPrefix:  "web",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.input
			cfg.Sanitize()
			if cfg.IsEnabled() != tt.wantEnabled {
				t.Errorf("IsEnabled() = %v, want %v", cfg.IsEnabled(), tt.wantEnabled)
			}
			if cfg.Prefix != tt.wantPrefix {
				t.Errorf("Prefix = %q, want %q", cfg.Prefix, tt.wantPrefix)
			}
		})
	}
}
