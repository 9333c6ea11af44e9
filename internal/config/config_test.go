package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("RAPIDAPI_KEY", "key")
	t.Setenv("SITE_URL", "https://terafetch.example.com")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_PORT", "")
	t.Setenv("HTTP_TIMEOUT", "")
	t.Setenv("LINK_MARKER", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "3000" {
		t.Errorf("expected default port 3000, got %q", cfg.Server.Port)
	}
	if cfg.HTTP.Timeout != 15*time.Second {
		t.Errorf("expected default timeout 15s, got %s", cfg.HTTP.Timeout)
	}
	if cfg.Resolver.Host != defaultResolverHost {
		t.Errorf("unexpected resolver host %q", cfg.Resolver.Host)
	}
	if cfg.Resolver.LinkMarker != "terabox.com" {
		t.Errorf("unexpected link marker %q", cfg.Resolver.LinkMarker)
	}
	if cfg.Telegram.BotToken != "123:abc" {
		t.Errorf("unexpected bot token %q", cfg.Telegram.BotToken)
	}
}

func TestLoadFailsFastOnMissingValues(t *testing.T) {
	tests := []struct {
		name  string
		unset string
		want  string
	}{
		{"bot token", "BOT_TOKEN", "BOT_TOKEN must be provided"},
		{"api key", "RAPIDAPI_KEY", "RAPIDAPI_KEY must be provided"},
		{"site url", "SITE_URL", "SITE_URL must be provided"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")

			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err.Error() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, err.Error())
			}
		})
	}
}

func TestLoadRejectsRelativeSiteURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SITE_URL", "terafetch.example.com")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err == nil || !strings.Contains(err.Error(), "SITE_URL") {
		t.Fatalf("expected SITE_URL error, got %v", err)
	}
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_TIMEOUT", "soon")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err == nil || !strings.Contains(err.Error(), "HTTP_TIMEOUT") {
		t.Fatalf("expected HTTP_TIMEOUT error, got %v", err)
	}
}

func TestValidateNil(t *testing.T) {
	var cfg *Config
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for nil config")
	}
}
