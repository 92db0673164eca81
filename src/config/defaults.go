package config

import (
	"time"
)

// DefaultConfig returns a configuration with sensible defaults.
// Credentials and URLs still have to come from a service key or environment.
func DefaultConfig() *Config {
	return &Config{
		ResourceGroup: "default",
		Timeout:       30 * time.Second,
		RetryInterval: 10 * time.Second,
		RetryCeiling:  5 * time.Minute,
	}
}
