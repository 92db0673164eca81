package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const completionsPath = "/chat/completions"

// Invoke resolves the named model to a deployment and sends a chat
// completion request to its endpoint.
func (c *Client) Invoke(ctx context.Context, model string, req *ChatRequest) (*ChatResponse, error) {
	deployment, err := c.ResolveDeployment(ctx, model)
	if err != nil {
		return nil, err
	}
	if !deployment.IsRunning() {
		return nil, fmt.Errorf("%w: deployment %s is %s", ErrDeploymentNotReady, deployment.ID, deployment.Status)
	}

	return c.InvokeDeployment(ctx, deployment.DeploymentURL, req)
}

// InvokeDeployment POSTs a chat completion request to a resolved deployment
// endpoint.
func (c *Client) InvokeDeployment(ctx context.Context, deploymentURL string, req *ChatRequest) (*ChatResponse, error) {
	if deploymentURL == "" {
		return nil, fmt.Errorf("%w: deployment URL is empty", ErrNoDeployment)
	}

	logger := c.logger.With("method", "InvokeDeployment", "deployment_url", deploymentURL)
	logger.Debug("sending chat completion request")

	body, err := json.Marshal(req)
	if err != nil {
		logger.Error("failed to marshal request", "error", err)
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := strings.TrimSuffix(deploymentURL, "/") + completionsPath
	if c.config.APIVersion != "" {
		endpoint += "?api-version=" + url.QueryEscape(c.config.APIVersion)
	}

	httpReq, err := c.newRequestURL(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequestWithRetry(httpReq)
	if err != nil {
		logger.Error("request failed", "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("received error response", "status_code", resp.StatusCode)
		return nil, c.handleError(resp)
	}

	var result ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		logger.Error("failed to decode response", "error", err)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	logger.Info("chat completion successful", "usage_total", result.Usage.TotalTokens)
	return &result, nil
}
