package gateway

import (
	"time"
)

// Deployment lifecycle statuses reported by the gateway.
const (
	StatusPending  = "PENDING"
	StatusRunning  = "RUNNING"
	StatusStopped  = "STOPPED"
	StatusDead     = "DEAD"
	StatusUnknown  = "UNKNOWN"
	StatusStopping = "STOPPING"
	StatusDeleting = "DELETING"
)

// DeploymentList is the wire shape of the deployment listing endpoint.
type DeploymentList struct {
	Count     int           `json:"count"`
	Resources []*Deployment `json:"resources"`
}

// Deployment describes one provisioned model instance on the gateway.
type Deployment struct {
	ID                string            `json:"id"`
	ConfigurationID   string            `json:"configurationId"`
	ConfigurationName string            `json:"configurationName"`
	ScenarioID        string            `json:"scenarioId"`
	Status            string            `json:"status"`
	TargetStatus      string            `json:"targetStatus"`
	DeploymentURL     string            `json:"deploymentUrl"`
	CreatedAt         time.Time         `json:"createdAt"`
	ModifiedAt        time.Time         `json:"modifiedAt"`
	Details           DeploymentDetails `json:"details"`
}

// DeploymentDetails carries the nested backend metadata the gateway attaches
// to a deployment. Only the model identity is interesting here.
type DeploymentDetails struct {
	Resources struct {
		BackendDetails struct {
			Model ModelRef `json:"model"`
		} `json:"backend_details"`
	} `json:"resources"`
}

// ModelRef identifies the model a deployment serves.
type ModelRef struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Model returns the name of the model this deployment serves.
func (d *Deployment) Model() string {
	return d.Details.Resources.BackendDetails.Model.Name
}

// IsRunning reports whether the deployment is ready to serve requests.
func (d *Deployment) IsRunning() bool {
	return d.Status == StatusRunning
}

// terminal statuses never transition back to RUNNING
func (d *Deployment) isTerminal() bool {
	switch d.Status {
	case StatusStopped, StatusDead, StatusDeleting:
		return true
	}
	return false
}

// ChatMessage is a single message in a chat completion exchange.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the payload POSTed to a deployment's completion endpoint.
type ChatRequest struct {
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
}

// ChatChoice is one candidate completion.
type ChatChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// Usage reports token accounting for a completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatResponse is the gateway's completion response.
type ChatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
	Usage   Usage        `json:"usage"`
}

// Content returns the first choice's message content, or "" when the
// response carries no choices.
func (r *ChatResponse) Content() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}
