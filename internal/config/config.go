// Package config loads the server configuration from a TOML file with
// sane defaults for every field, so a missing file still yields a
// runnable server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the full server configuration.
type Config struct {
	Addr        string   `toml:"addr"`
	DSN         string   `toml:"dsn"`
	UploadDir   string   `toml:"upload_dir"`
	CorsOrigins []string `toml:"cors_origins"`
	LogLevel    string   `toml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Addr:        ":8080",
		DSN:         "dynaform.db",
		UploadDir:   "uploads",
		CorsOrigins: []string{"*"},
		LogLevel:    "info",
	}
}

// Load reads the TOML file at path, layered over the defaults. A
// missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	body, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// A missing file is fine; env overrides may still apply.
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := toml.Unmarshal(body, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv layers environment overrides over the file values, for
// container deployments that never mount a config file.
func (c *Config) applyEnv() {
	if v := os.Getenv("DYNAFORM_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("DYNAFORM_DSN"); v != "" {
		c.DSN = v
	}
	if v := os.Getenv("DYNAFORM_UPLOAD_DIR"); v != "" {
		c.UploadDir = v
	}
	if v := os.Getenv("DYNAFORM_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate checks the configuration for values the server cannot start
// with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("addr must not be empty")
	}
	if strings.TrimSpace(c.DSN) == "" {
		return errors.New("dsn must not be empty")
	}
	if strings.TrimSpace(c.UploadDir) == "" {
		return errors.New("upload_dir must not be empty")
	}
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}
