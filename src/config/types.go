package config

import (
	"time"
)

// Config holds everything needed to talk to the model gateway for one session.
// It is assembled from a service key file, defaults, and environment overrides.
type Config struct {
	// AuthURL is the base URL of the OAuth2 server that issues bearer tokens.
	AuthURL string `json:"auth_url" env:"GENAIHUB_AUTH_URL" validate:"required,url"`

	// ClientID identifies this client for the credentials exchange.
	ClientID string `json:"client_id" env:"GENAIHUB_CLIENT_ID" validate:"required"`

	// ClientSecret is the secret half of the credentials pair.
	ClientSecret string `json:"client_secret" env:"GENAIHUB_CLIENT_SECRET" validate:"required"`

	// APIBaseURL is the gateway API root, e.g. https://api.ai.example.com.
	APIBaseURL string `json:"api_base_url" env:"GENAIHUB_API_URL" validate:"required,url"`

	// ResourceGroup scopes deployment lookups on the gateway.
	ResourceGroup string `json:"resource_group" env:"GENAIHUB_RESOURCE_GROUP" validate:"omitempty,resource_group"`

	// Model is the logical model name resolved to a deployment endpoint.
	Model string `json:"model" env:"GENAIHUB_MODEL"`

	// APIVersion is appended as a query parameter on invoke calls when set.
	APIVersion string `json:"api_version,omitempty" env:"GENAIHUB_API_VERSION"`

	// Timeout bounds a single HTTP request.
	Timeout time.Duration `json:"timeout,omitempty" env:"GENAIHUB_TIMEOUT" validate:"min=0"`

	// RetryInterval is the fixed sleep between attempts of a retried call.
	RetryInterval time.Duration `json:"retry_interval,omitempty" env:"GENAIHUB_RETRY_INTERVAL" validate:"min=0"`

	// RetryCeiling is the total time budget an operation may spend retrying.
	RetryCeiling time.Duration `json:"retry_ceiling,omitempty" env:"GENAIHUB_RETRY_CEILING" validate:"min=0"`
}

// ServiceKey mirrors the JSON credentials file issued when the gateway
// service instance is provisioned.
type ServiceKey struct {
	ClientID     string `json:"clientid"`
	ClientSecret string `json:"clientsecret"`
	URL          string `json:"url"`
	ServiceURLs  struct {
		AIAPIURL string `json:"AI_API_URL"`
	} `json:"serviceurls"`
}
