package config

import (
	"os"
	"testing"
	"time"
)

// chdirTemp switches to a temp directory to avoid loading a real .env.
func chdirTemp(t *testing.T) {
	t.Helper()
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("could not get working directory: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("could not chdir to temp dir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(origDir); err != nil {
			t.Fatalf("could not chdir back to original dir: %v", err)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort: expected %d, got %d", 8080, cfg.ServerPort)
	}
	if cfg.ArchiveBucket != "atx-traffic-cameras" {
		t.Errorf("ArchiveBucket: expected %q, got %q", "atx-traffic-cameras", cfg.ArchiveBucket)
	}
	if cfg.OriginBaseURL != "https://cctv.austinmobility.io" {
		t.Errorf("OriginBaseURL: expected %q, got %q", "https://cctv.austinmobility.io", cfg.OriginBaseURL)
	}
	if cfg.FallbackImagePath != "assets/fallback.jpg" {
		t.Errorf("FallbackImagePath: expected %q, got %q", "assets/fallback.jpg", cfg.FallbackImagePath)
	}
	if cfg.CacheTTL != 60*time.Second {
		t.Errorf("CacheTTL: expected %v, got %v", 60*time.Second, cfg.CacheTTL)
	}
	if cfg.CacheTTLCamera != 300*time.Second {
		t.Errorf("CacheTTLCamera: expected %v, got %v", 300*time.Second, cfg.CacheTTLCamera)
	}
	if !cfg.RedisTLS {
		t.Error("RedisTLS: expected true by default")
	}
	if cfg.SigningSecret != "" {
		t.Errorf("SigningSecret: expected empty, got %q", cfg.SigningSecret)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirTemp(t)

	envs := map[string]string{
		"SERVER_PORT":         "9090",
		"REDIS_ADDR":          "redis:6379",
		"REDIS_TLS":           "false",
		"ORIGIN_BASE_URL":     "https://cameras.example.com",
		"SIGNING_SECRET":      "super-secret",
		"CACHE_TTL":           "120",
		"CACHE_TTL_CAMERA":    "600",
		"MARIADB_DSN":         "user:pass@tcp(localhost:3306)/captures",
		"FALLBACK_IMAGE_PATH": "custom/fallback.jpg",
	}
	for k, v := range envs {
		t.Setenv(k, v)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.ServerPort != 9090 {
		t.Errorf("ServerPort: expected %d, got %d", 9090, cfg.ServerPort)
	}
	if cfg.RedisAddr != "redis:6379" {
		t.Errorf("RedisAddr: expected %q, got %q", "redis:6379", cfg.RedisAddr)
	}
	if cfg.RedisTLS {
		t.Error("RedisTLS: expected override to false")
	}
	if cfg.OriginBaseURL != "https://cameras.example.com" {
		t.Errorf("OriginBaseURL: expected %q, got %q", "https://cameras.example.com", cfg.OriginBaseURL)
	}
	if cfg.SigningSecret != "super-secret" {
		t.Errorf("SigningSecret: expected %q, got %q", "super-secret", cfg.SigningSecret)
	}
	if cfg.CacheTTL != 120*time.Second {
		t.Errorf("CacheTTL: expected %v, got %v", 120*time.Second, cfg.CacheTTL)
	}
	if cfg.CacheTTLCamera != 600*time.Second {
		t.Errorf("CacheTTLCamera: expected %v, got %v", 600*time.Second, cfg.CacheTTLCamera)
	}
	if cfg.MariaDBDSN != envs["MARIADB_DSN"] {
		t.Errorf("MariaDBDSN: expected %q, got %q", envs["MARIADB_DSN"], cfg.MariaDBDSN)
	}
	if cfg.FallbackImagePath != "custom/fallback.jpg" {
		t.Errorf("FallbackImagePath: expected %q, got %q", "custom/fallback.jpg", cfg.FallbackImagePath)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"server port out of range", "SERVER_PORT", "70000"},
		{"server port zero", "SERVER_PORT", "0"},
		{"origin base URL not a URL", "ORIGIN_BASE_URL", "not-a-url"},
		{"cache TTL zero", "CACHE_TTL", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			chdirTemp(t)
			t.Setenv(tc.key, tc.value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected a validation error for %s=%s", tc.key, tc.value)
			}
		})
	}
}
