package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Port != "5000" {
		t.Errorf("Expected default port 5000, got %s", cfg.Server.Port)
	}
	if cfg.Auth.TokenTTL != 30*24*time.Hour {
		t.Errorf("Expected default token TTL of 30 days, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.CORS.FrontendURL != "*" {
		t.Errorf("Expected default frontend URL *, got %s", cfg.CORS.FrontendURL)
	}
	if !cfg.Redis.Enabled {
		t.Error("Expected redis enabled by default")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	os.Setenv("PORT", "8081")
	os.Setenv("TOKEN_TTL", "24h")
	os.Setenv("DB_NAME", "taskflow_test")
	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("TOKEN_TTL")
		os.Unsetenv("DB_NAME")
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Port != "8081" {
		t.Errorf("Expected port 8081, got %s", cfg.Server.Port)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("Expected token TTL 24h, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Database.Name != "taskflow_test" {
		t.Errorf("Expected db name taskflow_test, got %s", cfg.Database.Name)
	}
}

func TestLoadConfigProductionGuards(t *testing.T) {
	os.Setenv("ENVIRONMENT", "production")
	os.Setenv("DB_PASSWORD", "pw")
	defer func() {
		os.Unsetenv("ENVIRONMENT")
		os.Unsetenv("DB_PASSWORD")
		os.Unsetenv("JWT_SECRET")
	}()

	if _, err := LoadConfig(); err == nil {
		t.Error("Expected error for default JWT secret in production")
	}

	os.Setenv("JWT_SECRET", "real-secret")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Expected config to load with explicit secret: %v", err)
	}
	if !cfg.IsProduction() {
		t.Error("Expected IsProduction to be true")
	}
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable",
		},
	}

	want := "host=db port=5432 user=u password=p dbname=n sslmode=disable"
	if got := cfg.GetDatabaseDSN(); got != want {
		t.Errorf("Expected DSN %q, got %q", want, got)
	}
}

func TestAllowAllOrigins(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"*", true},
		{"", true},
		{"   ", true},
		{"https://app.example.com", false},
	}

	for _, tt := range tests {
		cfg := &Config{CORS: CORSConfig{FrontendURL: tt.url}}
		if got := cfg.AllowAllOrigins(); got != tt.want {
			t.Errorf("AllowAllOrigins(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}
