package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.ResourceGroup != "default" {
		t.Errorf("Expected resource group default, got %s", config.ResourceGroup)
	}
	if config.Timeout != 30*time.Second {
		t.Errorf("Expected 30s timeout, got %s", config.Timeout)
	}
	if config.RetryInterval <= 0 {
		t.Error("Expected positive retry interval")
	}
	if config.RetryCeiling < config.RetryInterval {
		t.Error("Expected retry ceiling to cover at least one interval")
	}
}

func writeServiceKey(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "service_key.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write service key: %v", err)
	}
	return path
}

func TestLoadServiceKey(t *testing.T) {
	path := writeServiceKey(t, `{
		"clientid": "sb-client",
		"clientsecret": "hunter2",
		"url": "https://auth.example.com",
		"serviceurls": {"AI_API_URL": "https://api.ai.example.com"}
	}`)

	config, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if config.ClientID != "sb-client" {
		t.Errorf("ClientID = %s, want sb-client", config.ClientID)
	}
	if config.ClientSecret != "hunter2" {
		t.Errorf("ClientSecret = %s, want hunter2", config.ClientSecret)
	}
	if config.AuthURL != "https://auth.example.com" {
		t.Errorf("AuthURL = %s, want https://auth.example.com", config.AuthURL)
	}
	if config.APIBaseURL != "https://api.ai.example.com" {
		t.Errorf("APIBaseURL = %s, want https://api.ai.example.com", config.APIBaseURL)
	}

	// Defaults survive alongside the key
	if config.ResourceGroup != "default" {
		t.Errorf("ResourceGroup = %s, want default", config.ResourceGroup)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	path := writeServiceKey(t, `{
		"clientid": "sb-client",
		"clientsecret": "hunter2",
		"url": "https://auth.example.com",
		"serviceurls": {"AI_API_URL": "https://api.ai.example.com"}
	}`)

	t.Setenv("GENAIHUB_RESOURCE_GROUP", "team-a")
	t.Setenv("GENAIHUB_MODEL", "gpt-4o")
	t.Setenv("GENAIHUB_RETRY_INTERVAL", "2s")

	config, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if config.ResourceGroup != "team-a" {
		t.Errorf("ResourceGroup = %s, want team-a", config.ResourceGroup)
	}
	if config.Model != "gpt-4o" {
		t.Errorf("Model = %s, want gpt-4o", config.Model)
	}
	if config.RetryInterval != 2*time.Second {
		t.Errorf("RetryInterval = %s, want 2s", config.RetryInterval)
	}
}

func TestLoadMalformedServiceKey(t *testing.T) {
	path := writeServiceKey(t, `{not json`)

	if _, err := NewLoader().Load(path); err == nil {
		t.Error("Load() expected error for malformed JSON")
	}
}

func TestConfigValidation(t *testing.T) {
	valid := func() *Config {
		c := DefaultConfig()
		c.AuthURL = "https://auth.example.com"
		c.ClientID = "sb-client"
		c.ClientSecret = "hunter2"
		c.APIBaseURL = "https://api.ai.example.com"
		return c
	}

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "valid config",
			config:  valid(),
			wantErr: false,
		},
		{
			name: "missing client secret",
			config: func() *Config {
				c := valid()
				c.ClientSecret = ""
				return c
			}(),
			wantErr: true,
		},
		{
			name: "auth url not a url",
			config: func() *Config {
				c := valid()
				c.AuthURL = "not-a-url"
				return c
			}(),
			wantErr: true,
		},
		{
			name: "invalid resource group",
			config: func() *Config {
				c := valid()
				c.ResourceGroup = "-leading-dash"
				return c
			}(),
			wantErr: true,
		},
		{
			name: "negative timeout",
			config: func() *Config {
				c := valid()
				c.Timeout = -time.Second
				return c
			}(),
			wantErr: true,
		},
	}

	validator := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.Validate(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
