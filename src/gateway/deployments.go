package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const deploymentsPath = "/v2/lb/deployments"

// ListDeployments returns all deployments visible in the client's resource
// group.
func (c *Client) ListDeployments(ctx context.Context) ([]*Deployment, error) {
	logger := c.logger.With("method", "ListDeployments")
	logger.Debug("listing deployments")

	req, err := c.newRequest(ctx, http.MethodGet, deploymentsPath, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		logger.Error("request failed", "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("received error response", "status_code", resp.StatusCode)
		return nil, c.handleError(resp)
	}

	var result DeploymentList
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode deployment list: %w", err)
	}

	logger.Debug("listed deployments", "count", result.Count)
	return result.Resources, nil
}

// GetDeployment fetches a single deployment by its ID.
func (c *Client) GetDeployment(ctx context.Context, id string) (*Deployment, error) {
	logger := c.logger.With("method", "GetDeployment", "deployment_id", id)
	logger.Debug("fetching deployment")

	req, err := c.newRequest(ctx, http.MethodGet, deploymentsPath+"/"+id, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		logger.Error("request failed", "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("received error response", "status_code", resp.StatusCode)
		return nil, c.handleError(resp)
	}

	var result Deployment
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode deployment: %w", err)
	}

	return &result, nil
}

// ResolveDeployment finds the deployment serving the named model. Results are
// cached; use ResolveDeploymentUncached to bypass the cache.
func (c *Client) ResolveDeployment(ctx context.Context, model string) (*Deployment, error) {
	return c.deployments.Get(ctx, model)
}

// ResolveDeploymentUncached scans the deployment listing for one whose
// backend model matches the given name. A RUNNING deployment wins over a
// non-running one serving the same model.
func (c *Client) ResolveDeploymentUncached(ctx context.Context, model string) (*Deployment, error) {
	deployments, err := c.ListDeployments(ctx)
	if err != nil {
		return nil, err
	}

	var fallback *Deployment
	for _, d := range deployments {
		if !strings.EqualFold(d.Model(), model) {
			continue
		}
		if d.IsRunning() {
			return d, nil
		}
		if fallback == nil {
			fallback = d
		}
	}

	if fallback != nil {
		return fallback, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoDeployment, model)
}

// WaitForDeployment polls a deployment until it reaches RUNNING, giving up
// when the retry ceiling is spent or the deployment enters a terminal state.
func (c *Client) WaitForDeployment(ctx context.Context, id string) (*Deployment, error) {
	logger := c.logger.With("method", "WaitForDeployment", "deployment_id", id)

	deadline := time.Now().Add(c.config.RetryCeiling)
	for attempt := 1; ; attempt++ {
		d, err := c.GetDeployment(ctx, id)
		if err != nil {
			return nil, err
		}

		if d.IsRunning() {
			logger.Info("deployment is running", "attempts", attempt)
			return d, nil
		}
		if d.isTerminal() {
			return d, fmt.Errorf("%w: deployment %s is %s", ErrDeploymentNotReady, id, d.Status)
		}

		logger.Debug("deployment not ready", "attempt", attempt, "status", d.Status)

		if time.Now().Add(c.config.RetryInterval).After(deadline) {
			return d, fmt.Errorf("%w: deployment %s still %s after %s", ErrDeploymentNotReady, id, d.Status, c.config.RetryCeiling)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.config.RetryInterval):
		}
	}
}

// InvalidateDeployment drops the cached resolution for a model.
func (c *Client) InvalidateDeployment(model string) {
	c.deployments.Remove(model)
}
