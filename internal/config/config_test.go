package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dynaform.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.DSN != "dynaform.db" {
		t.Errorf("defaults wrong: %+v", cfg)
	}
}

func TestLoad_OverridesLayerOverDefaults(t *testing.T) {
	path := writeConfig(t, `
addr = ":9090"
log_level = "debug"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("addr = %q", cfg.Addr)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log_level = %q", cfg.LogLevel)
	}
	// Untouched fields keep their defaults.
	if cfg.UploadDir != "uploads" {
		t.Errorf("upload_dir = %q", cfg.UploadDir)
	}
}

func TestLoad_RejectsMalformed(t *testing.T) {
	path := writeConfig(t, "addr = [broken")
	if _, err := Load(path); err == nil {
		t.Error("malformed config accepted")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `addr = ":9090"`)
	t.Setenv("DYNAFORM_ADDR", ":7070")
	t.Setenv("DYNAFORM_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Errorf("addr = %q, want env override", cfg.Addr)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("log_level = %q", cfg.LogLevel)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	bad := Default()
	bad.Addr = " "
	if err := bad.Validate(); err == nil {
		t.Error("empty addr accepted")
	}

	bad = Default()
	bad.LogLevel = "loud"
	if err := bad.Validate(); err == nil {
		t.Error("unknown log level accepted")
	}
}
