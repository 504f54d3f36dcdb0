// Copyright (C) 2025 Zero-X Project
//
// This file is part of agent-trust-go.
//
// agent-trust-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// agent-trust-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with agent-trust-go.  If not, see <https://www.gnu.org/licenses/>.

// Package config handles configuration loading and validation for the
// trust verification engine.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Trust-store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Self-attestation policies.
const (
	PolicyManifestFlag = "manifest-flag"
	PolicyNever        = "never"
)

// Duration wraps time.Duration so TOML values like "5s" decode directly.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config holds the complete engine configuration.
type Config struct {
	// Manifests configures where signed manifests are read from.
	Manifests ManifestsConfig `toml:"manifests"`

	// TrustStore configures the persisted trusted key set.
	TrustStore TrustStoreConfig `toml:"truststore"`

	// Policy configures trust classification behavior.
	Policy PolicyConfig `toml:"policy"`

	// Storage configures the storage boundary shared by all backends.
	Storage StorageConfig `toml:"storage"`

	// Logging configures structured log output.
	Logging LoggingConfig `toml:"logging"`
}

// ManifestsConfig locates the per-agent manifest files.
type ManifestsConfig struct {
	Dir string `toml:"dir"`
}

// TrustStoreConfig selects and locates the trust-store backend.
type TrustStoreConfig struct {
	// Backend is "file" or "sqlite".
	Backend string `toml:"backend"`

	// Path is the trust file or database location.
	Path string `toml:"path"`

	// Watch reloads a file-backed store when the trust file changes
	// outside the process. Ignored for the sqlite backend.
	Watch bool `toml:"watch"`
}

// PolicyConfig tunes trust classification.
type PolicyConfig struct {
	// SelfAttested is "manifest-flag" or "never".
	SelfAttested string `toml:"self_attested"`
}

// StorageConfig bounds storage I/O during verification.
type StorageConfig struct {
	Timeout Duration `toml:"timeout"`
}

// LoggingConfig controls structured log output.
type LoggingConfig struct {
	// Level is "debug", "info", "warn", or "error".
	Level string `toml:"level"`

	// Format is "text" or "json".
	Format string `toml:"format"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Manifests: ManifestsConfig{
			Dir: "manifests",
		},
		TrustStore: TrustStoreConfig{
			Backend: BackendFile,
			Path:    "trusted_keys.yaml",
		},
		Policy: PolicyConfig{
			SelfAttested: PolicyManifestFlag,
		},
		Storage: StorageConfig{
			Timeout: Duration(5 * time.Second),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a TOML configuration file, filling unset values with
// defaults, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Manifests.Dir == "" {
		return fmt.Errorf("manifests.dir is required")
	}
	if c.TrustStore.Path == "" {
		return fmt.Errorf("truststore.path is required")
	}
	switch c.TrustStore.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("truststore.backend must be %q or %q, got %q", BackendFile, BackendSQLite, c.TrustStore.Backend)
	}
	if c.TrustStore.Watch && c.TrustStore.Backend != BackendFile {
		return fmt.Errorf("truststore.watch requires the %q backend", BackendFile)
	}
	switch c.Policy.SelfAttested {
	case PolicyManifestFlag, PolicyNever:
	default:
		return fmt.Errorf("policy.self_attested must be %q or %q, got %q", PolicyManifestFlag, PolicyNever, c.Policy.SelfAttested)
	}
	if time.Duration(c.Storage.Timeout) <= 0 {
		return fmt.Errorf("storage.timeout must be positive")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}
