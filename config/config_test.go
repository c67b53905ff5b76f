package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Auth.AccessTokenLifetime != 5*time.Minute {
		t.Errorf("Auth.AccessTokenLifetime = %v, want 5m", cfg.Auth.AccessTokenLifetime)
	}
	if cfg.Auth.RefreshTokenLifetime != 24*time.Hour {
		t.Errorf("Auth.RefreshTokenLifetime = %v, want 24h", cfg.Auth.RefreshTokenLifetime)
	}
	if cfg.Auth.RotateRefreshTokens {
		t.Error("Auth.RotateRefreshTokens should be false by default")
	}
	if !cfg.Auth.UpdateLastLogin {
		t.Error("Auth.UpdateLastLogin should be true by default")
	}
	if cfg.API.DefaultPageSize != 10 {
		t.Errorf("API.DefaultPageSize = %d, want 10", cfg.API.DefaultPageSize)
	}
	if cfg.Storage.Enabled() {
		t.Error("storage should be disabled without a bucket")
	}
	if err := cfg.Seed.Validate(); err != nil {
		t.Errorf("default seed config invalid: %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"PORT", "server.port"},
		{"DATABASE_URL", "database.url"},
		{"DB_HOST", "database.host"},
		{"JWT_SECRET", "auth.jwt_secret"},
		{"ROTATE_REFRESH_TOKENS", "auth.rotate_refresh_tokens"},
		{"CLOUDFLARE_BUCKET_NAME", "storage.bucket"},
		{"REDIS_ADDR", "redis.addr"},
		{"LOG_LEVEL", "logging.level"},
		{"SEED_NUMBER_OF_USERS", "seed.number_of_users"},
		{"SOCIAL_API__MAX_PAGE_SIZE", "api.max_page_size"},
		{"SOCIAL_SERVER__TOKEN_RATE_LIMIT", "server.token_rate_limit"},

		{"RANDOM_VAR", ""},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadLayers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9000
auth:
  jwt_secret: from-file
  access_token_lifetime: 10m
seed:
  number_of_users: 3
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("SEED_MAX_LIKES_PER_USER", "7")
	t.Setenv("SOCIAL_AUTH__ROTATE_REFRESH_TOKENS", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000 from file", cfg.Server.Port)
	}
	if cfg.Auth.JWTSecret != "from-env" {
		t.Errorf("Auth.JWTSecret = %q, env should override file", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.AccessTokenLifetime != 10*time.Minute {
		t.Errorf("Auth.AccessTokenLifetime = %v, want 10m", cfg.Auth.AccessTokenLifetime)
	}
	if cfg.Auth.RefreshTokenLifetime != 24*time.Hour {
		t.Errorf("Auth.RefreshTokenLifetime = %v, default should survive", cfg.Auth.RefreshTokenLifetime)
	}
	if !cfg.Auth.RotateRefreshTokens {
		t.Error("Auth.RotateRefreshTokens should be enabled by prefixed env var")
	}
	if cfg.Seed.NumberOfUsers != 3 || cfg.Seed.MaxLikesPerUser != 7 || cfg.Seed.MaxPostsPerUser != 5 {
		t.Errorf("Seed = %+v", cfg.Seed)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "jwt_secret") {
		t.Fatalf("expected jwt_secret error, got %v", err)
	}

	cfg.Auth.JWTSecret = "secret"
	cfg.API.MaxPageSize = 5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected page size error")
	}

	cfg.API.MaxPageSize = 100
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestSeedValidate(t *testing.T) {
	tests := []struct {
		name    string
		seed    SeedConfig
		wantErr bool
	}{
		{"valid", SeedConfig{1, 1, 1}, false},
		{"zero users", SeedConfig{0, 1, 1}, true},
		{"zero posts", SeedConfig{1, 0, 1}, true},
		{"negative likes", SeedConfig{1, 1, -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.seed.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", Name: "n", SSLMode: "require"}
	want := "host=db user=u password=p dbname=n port=5433 sslmode=require TimeZone=UTC"
	if got := d.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}

	d.URL = "postgres://x"
	if got := d.DSN(); got != "postgres://x" {
		t.Errorf("DSN() with URL = %q", got)
	}
}
