package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Fetch.DirectTimeout != 5*time.Second {
		t.Errorf("DirectTimeout = %v, want 5s", cfg.Fetch.DirectTimeout)
	}
	if cfg.Fetch.MinContentBytes != 500 {
		t.Errorf("MinContentBytes = %d, want 500", cfg.Fetch.MinContentBytes)
	}
	if cfg.Render.Timeout != 10*time.Second {
		t.Errorf("Render.Timeout = %v, want 10s", cfg.Render.Timeout)
	}
	if cfg.Render.APIKey != "" {
		t.Errorf("Render.APIKey = %q, want empty by default", cfg.Render.APIKey)
	}
	if cfg.Extract.BestBuyPriceFloor != 10 {
		t.Errorf("BestBuyPriceFloor = %v, want 10", cfg.Extract.BestBuyPriceFloor)
	}
	if !cfg.Extract.ReadabilityFallback {
		t.Error("ReadabilityFallback should default to true")
	}
	if cfg.Auth.Enabled {
		t.Error("Auth should default to disabled")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("UNFURL_PORT", "9090")
	t.Setenv("UNFURL_DIRECT_TIMEOUT", "2s")
	t.Setenv("UNFURL_RENDER_API_KEY", "k123")
	t.Setenv("UNFURL_BESTBUY_PRICE_FLOOR", "25.5")
	t.Setenv("UNFURL_AUTH_ENABLED", "true")
	t.Setenv("UNFURL_API_KEYS", "a, b ,,c")
	t.Setenv("UNFURL_READABILITY_FALLBACK", "false")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Fetch.DirectTimeout != 2*time.Second {
		t.Errorf("DirectTimeout = %v, want 2s", cfg.Fetch.DirectTimeout)
	}
	if cfg.Render.APIKey != "k123" {
		t.Errorf("APIKey = %q", cfg.Render.APIKey)
	}
	if cfg.Extract.BestBuyPriceFloor != 25.5 {
		t.Errorf("BestBuyPriceFloor = %v, want 25.5", cfg.Extract.BestBuyPriceFloor)
	}
	if !cfg.Auth.Enabled {
		t.Error("Auth.Enabled should be true")
	}
	if len(cfg.Auth.APIKeys) != 3 || cfg.Auth.APIKeys[1] != "b" {
		t.Errorf("APIKeys = %v, want trimmed 3-element slice", cfg.Auth.APIKeys)
	}
	if cfg.Extract.ReadabilityFallback {
		t.Error("ReadabilityFallback should be false")
	}
}

func TestLoadIgnoresGarbageEnv(t *testing.T) {
	t.Setenv("UNFURL_PORT", "not-a-number")
	t.Setenv("UNFURL_DIRECT_TIMEOUT", "soonish")

	cfg := Load()
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want default on unparseable value", cfg.Server.Port)
	}
	if cfg.Fetch.DirectTimeout != 5*time.Second {
		t.Errorf("DirectTimeout = %v, want default on unparseable value", cfg.Fetch.DirectTimeout)
	}
}
