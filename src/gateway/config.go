package gateway

import (
	"context"
	"log/slog"
	"time"
)

// TokenSource supplies bearer tokens for gateway requests.
// *auth.TokenSource satisfies this.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Config holds configuration for the gateway client
type Config struct {
	BaseURL       string        // Gateway API root URL
	Tokens        TokenSource   // Bearer token supplier
	ResourceGroup string        // Resource group scoping deployment lookups
	APIVersion    string        // Optional api-version query parameter on invoke
	Logger        *slog.Logger  // Logger for debugging
	Timeout       time.Duration // HTTP timeout for a single request
	RetryInterval time.Duration // Fixed sleep between retried attempts
	RetryCeiling  time.Duration // Total time budget for one retried operation
	CacheTTL      time.Duration // Deployment cache TTL
}
