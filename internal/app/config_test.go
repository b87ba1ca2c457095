package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != 3001 || cfg.Host != "0.0.0.0" {
		t.Fatalf("expected 0.0.0.0:3001, got %s", cfg.Addr())
	}
	if cfg.AccessTokenTTL != 8*time.Hour {
		t.Fatalf("expected 8h token ttl, got %s", cfg.AccessTokenTTL)
	}
	if cfg.Database.URL != "sqlite:///./app.db" {
		t.Fatalf("unexpected default database url %q", cfg.Database.URL)
	}
	if !cfg.SeedDemoData || !cfg.MetricsEnabled || cfg.Otel.Enabled {
		t.Fatalf("unexpected feature defaults: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("expected wildcard cors origins, got %v", cfg.CORSOrigins)
	}
	if !cfg.UsesDevSecret() {
		t.Fatalf("expected the development secret by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate defaults: %v", err)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET_KEY", "from-legacy-name")
	t.Setenv("ACCESS_TOKEN_TTL", "15m")
	t.Setenv("DATABASE_URL", "postgresql://app:pw@db:5432/skillbridge")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , https://b.example ,")
	t.Setenv("REALTIME_BUS", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("SEED_DEMO_DATA", "false")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != 8080 {
		t.Fatalf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.SecretKey != "from-legacy-name" {
		t.Fatalf("expected JWT_SECRET_KEY to set the secret, got %q", cfg.SecretKey)
	}
	if cfg.AccessTokenTTL != 15*time.Minute {
		t.Fatalf("expected 15m ttl, got %s", cfg.AccessTokenTTL)
	}
	if cfg.SeedDemoData {
		t.Fatalf("expected seeding disabled")
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.AllowedOrigins) != len(want) {
		t.Fatalf("expected %v, got %v", want, cfg.AllowedOrigins)
	}
	for i := range want {
		if cfg.AllowedOrigins[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, cfg.AllowedOrigins)
		}
	}
	bc := cfg.BusConfig()
	if bc.Kind != "redis" || bc.RedisAddr != "redis:6379" || bc.RedisChannel != "skillbridge.notifications" {
		t.Fatalf("unexpected bus config %+v", bc)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "custom.yaml")
	body := "port: 9000\ncors_origins:\n  - https://x.example\n  - https://y.example\ndatabase:\n  url: sqlite://\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != 9000 || cfg.Database.URL != "sqlite://" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://y.example" {
		t.Fatalf("expected yaml list origins, got %v", cfg.CORSOrigins)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected an error for an explicit missing config file")
	}
}

func TestConfigValidate(t *testing.T) {
	chdirTemp(t)
	base, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty secret", func(c *Config) { c.SecretKey = "  " }},
		{"zero ttl", func(c *Config) { c.AccessTokenTTL = 0 }},
		{"bad port", func(c *Config) { c.Port = 70000 }},
		{"unknown db scheme", func(c *Config) { c.Database.URL = "mysql://x" }},
		{"no db scheme", func(c *Config) { c.Database.URL = "app.db" }},
		{"unknown bus", func(c *Config) { c.Realtime.Bus = "kafka" }},
	}
	for _, tc := range cases {
		cfg := base
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected a validation error", tc.name)
		}
	}
}

// chdirTemp moves into an empty directory so no stray .env or config.yaml is read.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return dir
}
