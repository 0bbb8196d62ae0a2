package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Address != ":8080" {
		t.Errorf("expected default address :8080, got %s", cfg.Server.Address)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.BasePath != "/" {
		t.Errorf("expected base path /, got %s", cfg.BasePath)
	}
	if cfg.Store.Backend != BackendMemory {
		t.Errorf("expected memory backend, got %s", cfg.Store.Backend)
	}
	if cfg.Environment != "Development" {
		t.Errorf("expected Development environment, got %s", cfg.Environment)
	}
	if cfg.Jobs.WarrantySweepSchedule != "@every 1h" {
		t.Errorf("unexpected sweep schedule %q", cfg.Jobs.WarrantySweepSchedule)
	}
	if cfg.Jobs.Timeout != 5*time.Minute {
		t.Errorf("unexpected job timeout %s", cfg.Jobs.Timeout)
	}
	if cfg.CSRF.HeaderName != "X-CSRF-Token" {
		t.Errorf("unexpected csrf header %q", cfg.CSRF.HeaderName)
	}
	if !cfg.Store.Seed {
		t.Errorf("expected seeding enabled by default")
	}
}

func TestLoadWithOverrides(t *testing.T) {
	env := map[string]string{
		"ADMIN_HTTP_ADDR":              ":9090",
		"ADMIN_HTTP_READ_TIMEOUT":      "20s",
		"ADMIN_BASE_PATH":              "/admin",
		"ADMIN_STORE_BACKEND":          "Firestore",
		"ADMIN_FIREBASE_PROJECT_ID":    "nexora-prod",
		"ADMIN_SESSION_SECURE":         "true",
		"ADMIN_ENVIRONMENT":            "Staging",
		"ADMIN_OTEL_EXPORTER_ENDPOINT": "collector:4318",
	}

	cfg, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Address != ":9090" {
		t.Errorf("unexpected address %s", cfg.Server.Address)
	}
	if cfg.Server.ReadTimeout != 20*time.Second {
		t.Errorf("unexpected read timeout %s", cfg.Server.ReadTimeout)
	}
	if cfg.Store.Backend != BackendFirestore {
		t.Errorf("expected backend to be normalised, got %s", cfg.Store.Backend)
	}
	if cfg.Store.FirestoreProjectID != "nexora-prod" {
		t.Errorf("expected firestore project to default to firebase project, got %s", cfg.Store.FirestoreProjectID)
	}
	if !cfg.Session.Secure {
		t.Errorf("expected secure session cookie")
	}
	if cfg.Tracing.ExporterEndpoint != "collector:4318" {
		t.Errorf("unexpected exporter endpoint %s", cfg.Tracing.ExporterEndpoint)
	}
}

func TestLoadValidationErrors(t *testing.T) {
	env := map[string]string{
		"ADMIN_STORE_BACKEND":     "postgres",
		"ADMIN_SESSION_HASH_KEY":  "short",
		"ADMIN_SESSION_BLOCK_KEY": "abc",
	}

	_, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	fields := validationErr.Fields()
	want := map[string]bool{"Store.Backend": false, "Session.HashKey": false, "Session.BlockKey": false}
	for _, f := range fields {
		if _, ok := want[f]; ok {
			want[f] = true
		}
	}
	for field, seen := range want {
		if !seen {
			t.Errorf("expected %s in validation fields %v", field, fields)
		}
	}
}

func TestLoadFirestoreRequiresProject(t *testing.T) {
	_, err := Load(WithEnvMap(map[string]string{"ADMIN_STORE_BACKEND": "firestore"}), WithoutSystemEnv(), WithEnvFile(""))
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if got := validationErr.Fields(); len(got) != 1 || got[0] != "Store.FirestoreProjectID" {
		t.Fatalf("unexpected fields %v", got)
	}
}

func TestDotEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "ADMIN_HTTP_ADDR=:7070\nADMIN_ENVIRONMENT=\"Local\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(WithEnvFile(path), WithoutSystemEnv(), WithEnvMap(map[string]string{
		"ADMIN_ENVIRONMENT": "Override",
	}))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Address != ":7070" {
		t.Errorf("expected address from .env, got %s", cfg.Server.Address)
	}
	if cfg.Environment != "Override" {
		t.Errorf("expected env map to win over .env, got %s", cfg.Environment)
	}
}

func TestMissingDotEnvIsIgnored(t *testing.T) {
	values, err := EnvironmentValues(WithEnvFile(filepath.Join(t.TempDir(), "missing.env")), WithoutSystemEnv())
	if err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
	if len(values) != 0 {
		t.Fatalf("expected no values, got %v", values)
	}
}
