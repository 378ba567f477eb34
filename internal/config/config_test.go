package config_test

import (
	"testing"

	"sangha/internal/config"
)

// TestLoad_Defaults verifies the development defaults.
func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr != ":5001" {
		t.Errorf("Addr = %q, want :5001", cfg.Addr)
	}
	if cfg.DBPath != "sangha.db" {
		t.Errorf("DBPath = %q, want sangha.db", cfg.DBPath)
	}
	if cfg.SendTimeoutSeconds != 15 {
		t.Errorf("SendTimeoutSeconds = %d, want 15", cfg.SendTimeoutSeconds)
	}
	if cfg.IsProduction() {
		t.Error("IsProduction = true by default")
	}
}

// TestLoad_Environment verifies env vars override defaults.
func TestLoad_Environment(t *testing.T) {
	t.Setenv("SANGHA_ADDR", ":9090")
	t.Setenv("SANGHA_SEND_TIMEOUT_SECONDS", "30")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Addr)
	}
	if cfg.SendTimeoutSeconds != 30 {
		t.Errorf("SendTimeoutSeconds = %d, want 30", cfg.SendTimeoutSeconds)
	}
}

// TestLoad_ProductionRequiresSecret verifies the hard production guard.
func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("SANGHA_ENV", "production")
	t.Setenv("SANGHA_JWT_SECRET", "")

	if _, err := config.Load(); err == nil {
		t.Fatal("Load succeeded in production without a JWT secret")
	}

	t.Setenv("SANGHA_JWT_SECRET", "super-secret")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed with secret set: %v", err)
	}
	if !cfg.IsProduction() {
		t.Error("IsProduction = false with SANGHA_ENV=production")
	}
}
