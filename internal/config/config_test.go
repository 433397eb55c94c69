package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STRIPE_PRICE_TIERS", "price_btn:btn, price_eng:engine,broken,:x")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Auth.SessionCookie != "accessToken" {
		t.Errorf("SessionCookie = %q, want accessToken", cfg.Auth.SessionCookie)
	}
	if cfg.Server.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %v, want 10s", cfg.Server.RequestTimeout)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if len(cfg.Billing.PriceTiers) != 2 {
		t.Fatalf("PriceTiers = %v, want 2 entries", cfg.Billing.PriceTiers)
	}
	if cfg.Billing.PriceTiers["price_eng"] != "engine" {
		t.Errorf("PriceTiers[price_eng] = %q, want engine", cfg.Billing.PriceTiers["price_eng"])
	}
}

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 8080},
			Database: DatabaseConfig{Driver: "sqlite"},
			Auth:     AuthConfig{SessionCookie: "accessToken", JWTSecret: "s"},
			Jobs:     JobsConfig{BatchSize: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}, wantErr: false},
		{name: "no identity provider", mutate: func(c *Config) { c.Auth.JWTSecret = "" }, wantErr: true},
		{name: "jwks without audience", mutate: func(c *Config) { c.Auth.JWKSIssuer = "https://id.example.com" }, wantErr: true},
		{name: "jwks with audience", mutate: func(c *Config) {
			c.Auth.JWTSecret = ""
			c.Auth.JWKSIssuer = "https://id.example.com"
			c.Auth.JWKSAudience = "fitcoach"
		}, wantErr: false},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "bad driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }, wantErr: true},
		{name: "zero batch", mutate: func(c *Config) { c.Jobs.BatchSize = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadEntitlements(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "entitlements.yaml")
	content := `entitled_statuses: [active]
features:
  engine: [engine, premium, pro]
aliases:
  full-program: engine
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	ec, err := LoadEntitlements(path)
	if err != nil {
		t.Fatalf("LoadEntitlements() error = %v", err)
	}
	if len(ec.EntitledStatuses) != 1 || ec.EntitledStatuses[0] != "active" {
		t.Errorf("EntitledStatuses = %v", ec.EntitledStatuses)
	}
	if got := ec.Features["engine"]; len(got) != 3 {
		t.Errorf("Features[engine] = %v", got)
	}
	if ec.Aliases["full-program"] != "engine" {
		t.Errorf("Aliases = %v", ec.Aliases)
	}

	none, err := LoadEntitlements("")
	if err != nil || none != nil {
		t.Errorf("LoadEntitlements(\"\") = %v, %v; want nil, nil", none, err)
	}

	if _, err := LoadEntitlements(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadEntitlements() expected error for missing file")
	}
}
