package config

import (
	"testing"
	"time"
)

func TestParseMethods(t *testing.T) {
	m := parseMethods("get, POST ,head")
	for _, want := range []string{"GET", "POST", "HEAD"} {
		if !m[want] {
			t.Errorf("missing %s in %v", want, m)
		}
	}
	if len(m) != 3 {
		t.Errorf("len = %d, want 3", len(m))
	}
	if len(parseMethods("")) != 0 {
		t.Error("empty input should yield no methods")
	}
}

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	cfg := LoadRateLimitConfig()
	if !cfg.Enabled {
		t.Error("limiter should default to enabled")
	}
	if cfg.Capacity < 1 || cfg.RefillTokens < 1 || cfg.RefillInterval <= 0 {
		t.Errorf("invalid defaults: %+v", cfg)
	}
	if cfg.TTL < 5*cfg.RefillInterval {
		t.Errorf("TTL %v below minimum for interval %v", cfg.TTL, cfg.RefillInterval)
	}
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "-5")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 {
		t.Errorf("Capacity = %d, want clamped to 1", cfg.Capacity)
	}
	if cfg.RefillTokens != 1 {
		t.Errorf("RefillTokens = %d, want clamped to 1", cfg.RefillTokens)
	}
	if cfg.TTL != 10*time.Second {
		t.Errorf("TTL = %v, want raised to 5x interval", cfg.TTL)
	}
}

func TestLoadCacheConfigDefaults(t *testing.T) {
	cfg := LoadCacheConfig()
	if !cfg.Enabled {
		t.Error("cache should default to enabled")
	}
	if !cfg.Methods["GET"] {
		t.Errorf("GET not cacheable by default: %v", cfg.Methods)
	}
	if cfg.TTL != 15*time.Second {
		t.Errorf("TTL = %v, want 15s", cfg.TTL)
	}
}

func TestEnvBool(t *testing.T) {
	t.Setenv("X_BOOL", "yes")
	if !envBool("X_BOOL", false) {
		t.Error("yes should parse as true")
	}
	t.Setenv("X_BOOL", "off")
	if envBool("X_BOOL", true) {
		t.Error("off should parse as false")
	}
	t.Setenv("X_BOOL", "banana")
	if !envBool("X_BOOL", true) {
		t.Error("unparseable value should fall back to default")
	}
}
