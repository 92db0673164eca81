package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout       = 30 * time.Second
	defaultRetryInterval = 10 * time.Second
	defaultRetryCeiling  = 5 * time.Minute
	defaultCacheTTL      = time.Hour

	resourceGroupHeader = "AI-Resource-Group"
)

// Client is the model gateway API client.
type Client struct {
	config      Config
	httpClient  *http.Client
	logger      *slog.Logger
	baseURL     string
	tokens      TokenSource
	deployments *DeploymentCache
}

// NewClient creates a new gateway API client.
func NewClient(config Config) *Client {
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	if config.RetryInterval == 0 {
		config.RetryInterval = defaultRetryInterval
	}
	if config.RetryCeiling == 0 {
		config.RetryCeiling = defaultRetryCeiling
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = defaultCacheTTL
	}

	httpClient := &http.Client{
		Timeout: config.Timeout,
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "gateway_client")

	client := &Client{
		config:     config,
		httpClient: httpClient,
		logger:     logger,
		baseURL:    strings.TrimSuffix(config.BaseURL, "/"),
		tokens:     config.Tokens,
	}

	client.deployments = NewDeploymentCache(client, config.CacheTTL)

	return client
}

// newRequest creates a new HTTP request against the gateway API root.
func (c *Client) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	return c.newRequestURL(ctx, method, c.baseURL+path, body)
}

// newRequestURL creates a new HTTP request against an absolute URL with the
// appropriate headers. Deployment endpoints live outside the API root, so
// invoke calls come through here directly.
func (c *Client) newRequestURL(ctx context.Context, method, url string, body []byte) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.tokens == nil {
		return nil, ErrNoToken
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoToken, err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	if c.config.ResourceGroup != "" {
		req.Header.Set(resourceGroupHeader, c.config.ResourceGroup)
	}

	return req, nil
}

// doRequestWithRetry performs an HTTP request, retrying on transient failure
// at a fixed interval until the retry ceiling is spent. 4xx responses are
// returned to the caller immediately; retrying them cannot help.
func (c *Client) doRequestWithRetry(req *http.Request) (*http.Response, error) {
	var lastErr error

	logger := c.logger.With("method", "doRequestWithRetry", "url", req.URL.String())

	var bodyBytes []byte
	if req.Body != nil {
		var err error
		bodyBytes, err = io.ReadAll(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
	}

	deadline := time.Now().Add(c.config.RetryCeiling)
	for attempt := 1; ; attempt++ {
		reqCopy := req.Clone(req.Context())
		if bodyBytes != nil {
			reqCopy.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}

		resp, err := c.httpClient.Do(reqCopy)
		if err != nil {
			lastErr = err
			logger.Debug("request attempt failed", "attempt", attempt, "error", err)
		} else if resp.StatusCode < 500 {
			// Success or client error - return immediately
			return resp, nil
		} else {
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
			logger.Debug("server error, retrying", "attempt", attempt, "status_code", resp.StatusCode)
		}

		if time.Now().Add(c.config.RetryInterval).After(deadline) {
			break
		}

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(c.config.RetryInterval):
		}
	}

	logger.Error("request failed after retry window", "window", c.config.RetryCeiling, "error", lastErr)
	return nil, fmt.Errorf("request failed after %s: %w", c.config.RetryCeiling, lastErr)
}

// handleError processes error responses from the gateway.
func (c *Client) handleError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read error response: %w", err)
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error.Message == "" {
		// Return a basic API error if we can't parse the response
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			RequestID:  resp.Header.Get("X-Request-ID"),
		}
	}

	apiErr := errResp.Error
	apiErr.StatusCode = resp.StatusCode
	apiErr.RequestID = resp.Header.Get("X-Request-ID")

	return &apiErr
}

// ResourceGroup returns the resource group this client is scoped to.
func (c *Client) ResourceGroup() string {
	return c.config.ResourceGroup
}
