package store

import "time"

// Invocation is one recorded inference call.
type Invocation struct {
	ID               string    `json:"id" db:"id"`
	Model            string    `json:"model" db:"model"`
	DeploymentID     string    `json:"deployment_id" db:"deployment_id"`
	DeploymentURL    string    `json:"deployment_url" db:"deployment_url"`
	Prompt           string    `json:"prompt" db:"prompt"`
	Response         string    `json:"response" db:"response"`
	Error            string    `json:"error" db:"error"`
	PromptTokens     int       `json:"prompt_tokens" db:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens" db:"completion_tokens"`
	DurationMs       int64     `json:"duration_ms" db:"duration_ms"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
