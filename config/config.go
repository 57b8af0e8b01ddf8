// Package config loads runtime defaults for the gdsl CLI: the diff engine's
// page size and the verifier's default strictness level. It is a front-end
// concern only — neither package
// delta nor package verify import it, preserving their "no global state, no
// process-wide initialization" property.
package config

import (
	"fmt"

	"github.com/spf13/viper"
	env "github.com/xyproto/env/v2"

	"github.com/kestrelgfx/gdsl/verify"
)

// Config holds the tunable defaults for a gdsl invocation.
type Config struct {
	Diff struct {
		PageSize int `mapstructure:"page_size"`
	} `mapstructure:"diff"`
	Verify struct {
		Level int `mapstructure:"level"`
	} `mapstructure:"verify"`
}

// Default returns the built-in defaults: a 4096-byte page size (the value
// of delta.DefaultPageSize) and DomainLevel,
// the strictest verification level, matching the reference CLI's
// fail-closed posture.
func Default() *Config {
	c := &Config{}
	c.Diff.PageSize = 4096
	c.Verify.Level = int(verify.DomainLevel)
	return c
}

// Load reads a YAML config file at path (if non-empty) via viper, the way
// novasql's internal.LoadConfig does, then lets GDSL_PAGE_SIZE and
// GDSL_VERIFY_LEVEL environment variables override individual fields via
// xyproto/env, the way vibe67's dependency on that package anticipates.
// An empty path skips the file and unset env vars leave their fields as
// they are; a file that cannot be read or parsed, a non-positive page size,
// or a verify level outside [Syntax, DomainLevel] is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		v := viper.New()
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := v.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
		}
	}

	cfg.Diff.PageSize = env.Int("GDSL_PAGE_SIZE", cfg.Diff.PageSize)
	cfg.Verify.Level = env.Int("GDSL_VERIFY_LEVEL", cfg.Verify.Level)

	if cfg.Diff.PageSize <= 0 {
		return nil, fmt.Errorf("config: page size must be positive, got %d", cfg.Diff.PageSize)
	}
	if cfg.Verify.Level < int(verify.Syntax) || cfg.Verify.Level > int(verify.DomainLevel) {
		return nil, fmt.Errorf("config: verify level %d out of range [%d,%d]", cfg.Verify.Level, verify.Syntax, verify.DomainLevel)
	}

	return cfg, nil
}
