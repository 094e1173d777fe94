package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("NEXTAUTH_SECRET", "s3cret")
	t.Setenv("DATABASE_URL", "postgres://localhost/sharedeck")

	cfg := Load()

	if cfg.Server.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Server.Port)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("expected postgres driver, got %s", cfg.Database.Driver)
	}
	if cfg.Redis.CardTTL != 10*time.Minute {
		t.Errorf("expected 10m card ttl, got %s", cfg.Redis.CardTTL)
	}
	if !cfg.Database.AutoMigrate {
		t.Error("expected auto migrate on by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("SCRAPE_INTERVAL", "6h")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("R2_PUBLIC_URL", "https://cdn.example/")

	cfg := Load()

	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Scraper.Interval != 6*time.Hour {
		t.Errorf("expected 6h interval, got %s", cfg.Scraper.Interval)
	}
	if cfg.Database.MaxConns != 25 {
		t.Errorf("expected 25 max conns, got %d", cfg.Database.MaxConns)
	}
	if cfg.R2.PublicURL != "https://cdn.example" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.R2.PublicURL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "missing secret",
			cfg:     Config{Database: DatabaseConfig{Driver: DriverSQLite, SQLitePath: "x.db"}},
			wantErr: true,
		},
		{
			name:    "postgres without url",
			cfg:     Config{Auth: AuthConfig{Secret: "s"}, Database: DatabaseConfig{Driver: DriverPostgres}},
			wantErr: true,
		},
		{
			name:    "unknown driver",
			cfg:     Config{Auth: AuthConfig{Secret: "s"}, Database: DatabaseConfig{Driver: "mysql"}},
			wantErr: true,
		},
		{
			name: "sqlite ok",
			cfg:  Config{Auth: AuthConfig{Secret: "s"}, Database: DatabaseConfig{Driver: DriverSQLite, SQLitePath: "x.db"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestR2Enabled(t *testing.T) {
	if (R2Config{}).Enabled() {
		t.Error("empty config must be disabled")
	}
	full := R2Config{Endpoint: "e", AccessKey: "a", SecretKey: "s", Bucket: "b", PublicURL: "p"}
	if !full.Enabled() {
		t.Error("full config must be enabled")
	}
}
