package config

import (
	"reflect"
	"testing"
)

// clearEnv blanks every variable LoadConfig reads so tests see only what they
// set themselves.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "MONGODB_URI", "MONGODB_PASSWORD", "ENVIRONMENT", "LOG_LEVEL",
		"ADMIN_EMAIL", "RESTRICTED_ROOM_IDS", "TIMEZONE", "CORS_ORIGIN",
		"SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD", "SMTP_FROM_NAME",
		"GOOGLE_CREDENTIALS_FILE", "GOOGLE_CALENDAR_ID", "IDENTITY_JWKS_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigRequiredFields(t *testing.T) {
	clearEnv(t)

	if _, err := LoadConfig(); err == nil {
		t.Error("expected error when MONGODB_URI is unset")
	}

	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	if _, err := LoadConfig(); err == nil {
		t.Error("expected error when ADMIN_EMAIL is unset")
	}

	t.Setenv("ADMIN_EMAIL", "admin@x.com")
	if _, err := LoadConfig(); err != nil {
		t.Errorf("expected config to load, got %v", err)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("ADMIN_EMAIL", "admin@x.com")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("default port = %q, want 8080", cfg.Port)
	}
	if cfg.Environment != "development" {
		t.Errorf("default environment = %q, want development", cfg.Environment)
	}
	if cfg.SMTPPort != "587" {
		t.Errorf("default SMTP port = %q, want 587", cfg.SMTPPort)
	}
	if cfg.TimeZone != "America/Sao_Paulo" {
		t.Errorf("default timezone = %q, want America/Sao_Paulo", cfg.TimeZone)
	}
	if cfg.CORSOrigin != "http://localhost:5173" {
		t.Errorf("default CORS origin = %q", cfg.CORSOrigin)
	}
	if cfg.RestrictedRoomIDs != nil {
		t.Errorf("expected no restricted rooms by default, got %v", cfg.RestrictedRoomIDs)
	}
	if !cfg.IsDevelopment() || cfg.IsProduction() {
		t.Error("default environment should report development, not production")
	}
}

func TestLoadConfigRestrictedRoomList(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("ADMIN_EMAIL", "admin@x.com")
	t.Setenv("RESTRICTED_ROOM_IDS", " room-1 , room-2 ,, room-3 ")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	want := []string{"room-1", "room-2", "room-3"}
	if !reflect.DeepEqual(cfg.RestrictedRoomIDs, want) {
		t.Errorf("RestrictedRoomIDs = %v, want %v", cfg.RestrictedRoomIDs, want)
	}
}

func TestLoadConfigProductionFlag(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("ADMIN_EMAIL", "admin@x.com")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !cfg.IsProduction() {
		t.Error("expected production environment")
	}
}
