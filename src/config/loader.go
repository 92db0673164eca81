package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// Loader assembles a Config from a service key file, defaults, and
// environment variable overrides.
type Loader struct {
	validator *Validator
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{
		validator: NewValidator(),
	}
}

// Load builds the configuration. If keyPath is empty the service key is
// discovered via ServiceKeyCandidates. A missing key file is not fatal as
// long as the environment supplies the required fields.
func (l *Loader) Load(keyPath string) (*Config, error) {
	config := DefaultConfig()

	if keyPath == "" {
		if found, err := FindServiceKey(); err == nil {
			keyPath = found
		}
	}

	if keyPath != "" {
		key, err := l.loadServiceKey(keyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load service key from %s: %w", keyPath, err)
		}
		applyServiceKey(config, key)
	}

	// Environment overrides take precedence over the key file.
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	if err := l.validator.Validate(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadServiceKey reads and parses a single service key file.
func (l *Loader) loadServiceKey(path string) (*ServiceKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var key ServiceKey
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return &key, nil
}

// applyServiceKey copies the key's fields onto the config, leaving fields the
// key does not carry untouched.
func applyServiceKey(config *Config, key *ServiceKey) {
	if key.ClientID != "" {
		config.ClientID = key.ClientID
	}
	if key.ClientSecret != "" {
		config.ClientSecret = key.ClientSecret
	}
	if key.URL != "" {
		config.AuthURL = key.URL
	}
	if key.ServiceURLs.AIAPIURL != "" {
		config.APIBaseURL = key.ServiceURLs.AIAPIURL
	}
}
