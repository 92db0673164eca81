package gateway

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError(t *testing.T) {
	tests := []struct {
		name        string
		err         *APIError
		expectedMsg string
		isRetryable bool
		isRateLimit bool
		isAuthError bool
	}{
		{
			name: "basic error",
			err: &APIError{
				StatusCode: 400,
				Message:    "Bad request",
			},
			expectedMsg: "gateway error 400: Bad request",
			isRetryable: false,
			isRateLimit: false,
			isAuthError: false,
		},
		{
			name: "error with code",
			err: &APIError{
				StatusCode: 403,
				Message:    "Forbidden",
				Code:       "insufficient_permissions",
			},
			expectedMsg: "gateway error 403 (insufficient_permissions): Forbidden",
			isRetryable: false,
			isRateLimit: false,
			isAuthError: true,
		},
		{
			name: "server error",
			err: &APIError{
				StatusCode: 500,
				Message:    "Internal server error",
			},
			expectedMsg: "gateway error 500: Internal server error",
			isRetryable: true,
			isRateLimit: false,
			isAuthError: false,
		},
		{
			name: "rate limit error",
			err: &APIError{
				StatusCode: 429,
				Message:    "Too many requests",
				Code:       "rate_limit_exceeded",
			},
			expectedMsg: "gateway error 429 (rate_limit_exceeded): Too many requests",
			isRetryable: true,
			isRateLimit: true,
			isAuthError: false,
		},
		{
			name: "auth error",
			err: &APIError{
				StatusCode: 401,
				Message:    "Invalid token",
			},
			expectedMsg: "gateway error 401: Invalid token",
			isRetryable: false,
			isRateLimit: false,
			isAuthError: true,
		},
		{
			name: "timeout error",
			err: &APIError{
				StatusCode: 504,
				Message:    "Gateway timeout",
				Code:       "timeout",
			},
			expectedMsg: "gateway error 504 (timeout): Gateway timeout",
			isRetryable: true,
			isRateLimit: false,
			isAuthError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expectedMsg {
				t.Errorf("Error() = %v, want %v", tt.err.Error(), tt.expectedMsg)
			}
			if tt.err.IsRetryable() != tt.isRetryable {
				t.Errorf("IsRetryable() = %v, want %v", tt.err.IsRetryable(), tt.isRetryable)
			}
			if tt.err.IsRateLimit() != tt.isRateLimit {
				t.Errorf("IsRateLimit() = %v, want %v", tt.err.IsRateLimit(), tt.isRateLimit)
			}
			if tt.err.IsAuthError() != tt.isAuthError {
				t.Errorf("IsAuthError() = %v, want %v", tt.err.IsAuthError(), tt.isAuthError)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error", err: nil, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "retryable api error", err: &APIError{StatusCode: 503}, want: true},
		{name: "client api error", err: &APIError{StatusCode: 404}, want: false},
		{name: "wrapped api error", err: fmt.Errorf("call failed: %w", &APIError{StatusCode: 500}), want: true},
		{name: "rate limit sentinel", err: ErrRateLimited, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSentinelErrors(t *testing.T) {
	err := fmt.Errorf("%w: gpt-4o", ErrNoDeployment)
	if !errors.Is(err, ErrNoDeployment) {
		t.Error("expected wrapped error to match ErrNoDeployment")
	}
}
