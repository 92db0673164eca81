package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// Common error variables
var (
	// ErrNoToken indicates a bearer token could not be supplied
	ErrNoToken = errors.New("bearer token is required")

	// ErrNoDeployment indicates no deployment matched the requested model
	ErrNoDeployment = errors.New("no deployment found for model")

	// ErrDeploymentNotReady indicates the deployment never reached RUNNING
	ErrDeploymentNotReady = errors.New("deployment is not running")

	// ErrEmptyResponse indicates the gateway returned an empty completion
	ErrEmptyResponse = errors.New("empty response from gateway")

	// ErrRateLimited indicates rate limiting
	ErrRateLimited = errors.New("rate limited")
)

// ErrorResponse represents a standard error response from the gateway.
// Matches the {"error":{"message":"...","code":"..."}} wire format.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// APIError represents an error response from the gateway API.
type APIError struct {
	StatusCode int
	Type       string `json:"type"`
	Message    string `json:"message"`
	Code       string `json:"code"`
	RequestID  string `json:"request_id"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("gateway error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("gateway error %d: %s", e.StatusCode, e.Message)
}

// IsRetryable returns true if the error is retryable.
func (e *APIError) IsRetryable() bool {
	// 5xx errors are generally retryable
	if e.StatusCode >= 500 && e.StatusCode < 600 {
		return true
	}

	// Rate limit errors are retryable after a delay
	if e.StatusCode == http.StatusTooManyRequests {
		return true
	}

	switch e.Code {
	case "timeout", "connection_error", "server_error":
		return true
	}

	return false
}

// IsRateLimit returns true if this is a rate limit error.
func (e *APIError) IsRateLimit() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.Code == "rate_limit_exceeded"
}

// IsAuthError returns true if this is an authentication error.
func (e *APIError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsNotFound returns true if the requested resource does not exist.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.IsRetryable()
	}

	if errors.Is(err, ErrRateLimited) {
		return true
	}

	return false
}
