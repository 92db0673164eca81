package gateway

import (
	"context"
	"strings"
	"sync"
	"time"
)

// DeploymentCache caches model-name-to-deployment resolutions with a TTL.
type DeploymentCache struct {
	cache  map[string]*cachedDeployment
	mu     sync.RWMutex
	ttl    time.Duration
	client *Client
}

type cachedDeployment struct {
	deployment *Deployment
	fetchedAt  time.Time
}

// NewDeploymentCache creates a new deployment cache.
func NewDeploymentCache(client *Client, ttl time.Duration) *DeploymentCache {
	return &DeploymentCache{
		cache:  make(map[string]*cachedDeployment),
		ttl:    ttl,
		client: client,
	}
}

// Get resolves a model name to a deployment, serving from cache when the
// entry is fresh and the cached deployment was RUNNING.
func (dc *DeploymentCache) Get(ctx context.Context, model string) (*Deployment, error) {
	key := strings.ToLower(model)

	dc.mu.RLock()
	cached, exists := dc.cache[key]
	dc.mu.RUnlock()

	if exists && time.Since(cached.fetchedAt) < dc.ttl && cached.deployment.IsRunning() {
		return cached.deployment, nil
	}

	deployment, err := dc.client.ResolveDeploymentUncached(ctx, model)
	if err != nil {
		return nil, err
	}

	dc.mu.Lock()
	dc.cache[key] = &cachedDeployment{
		deployment: deployment,
		fetchedAt:  time.Now(),
	}
	dc.mu.Unlock()

	return deployment, nil
}

// Remove drops a single model's cached resolution.
func (dc *DeploymentCache) Remove(model string) {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	delete(dc.cache, strings.ToLower(model))
}

// Clear drops every cached resolution.
func (dc *DeploymentCache) Clear() {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	dc.cache = make(map[string]*cachedDeployment)
}
