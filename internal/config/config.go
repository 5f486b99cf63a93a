// Package config handles global configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/cb/config.yml,
// overridable per-key through the environment.
type Config struct {
	Mailto       string `yaml:"mailto,omitempty"`        // Contact address for the CrossRef polite pool
	ORCIDToken   string `yaml:"orcid_token,omitempty"`   // ORCID public API token
	DisableORCID bool   `yaml:"disable_orcid,omitempty"` // Skip identity lookups entirely
	CrossrefURL  string `yaml:"crossref_url,omitempty"`  // Override the CrossRef base URL
	ORCIDURL     string `yaml:"orcid_url,omitempty"`     // Override the ORCID base URL
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "cb"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
)

// Environment variables recognized by Load.
const (
	EnvMailto     = "CB_MAILTO"
	EnvORCIDToken = "CB_ORCID_TOKEN"
	EnvNoORCID    = "CB_NO_ORCID"
)

// configCache caches the loaded config.
var configCache *Config

// Path returns the path to the config file. Respects XDG_CONFIG_HOME,
// defaults to ~/.config/cb/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load loads the configuration file and applies environment overrides.
// Returns a default config (not an error) if the file doesn't exist.
func Load() (*Config, error) {
	if configCache != nil {
		return configCache, nil
	}

	cfg := &Config{}
	if path := Path(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	applyEnv(cfg)

	configCache = cfg
	return cfg, nil
}

// ResetCache clears the cached config. Useful for testing.
func ResetCache() {
	configCache = nil
}

// applyEnv overrides file values with environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvMailto); v != "" {
		cfg.Mailto = v
	}
	if v := os.Getenv(EnvORCIDToken); v != "" {
		cfg.ORCIDToken = v
	}
	if v := os.Getenv(EnvNoORCID); v != "" {
		cfg.DisableORCID = true
	}
}
