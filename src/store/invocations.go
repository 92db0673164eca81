package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/google/uuid"
)

// CreateInvocation records an inference call in the database
func CreateInvocation(ctx context.Context, db Execer, inv *Invocation) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now()
	}

	query := `INSERT INTO invocations (id, model, deployment_id, deployment_url, prompt, response, error, prompt_tokens, completion_tokens, duration_ms, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query,
		inv.ID,
		inv.Model,
		inv.DeploymentID,
		inv.DeploymentURL,
		inv.Prompt,
		inv.Response,
		inv.Error,
		inv.PromptTokens,
		inv.CompletionTokens,
		inv.DurationMs,
		inv.CreatedAt,
	)
	return err
}

// GetInvocationByID retrieves a recorded invocation by its ID
func GetInvocationByID(ctx context.Context, db sqlscan.Querier, id string) (*Invocation, error) {
	query := `SELECT id, model, deployment_id, deployment_url, prompt, response, error, prompt_tokens, completion_tokens, duration_ms, created_at FROM invocations WHERE id = ?`
	var inv Invocation
	err := sqlscan.Get(ctx, db, &inv, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, err
	}
	return &inv, nil
}

// ListInvocations retrieves the most recent invocations, newest first
func ListInvocations(ctx context.Context, db sqlscan.Querier, limit int) ([]Invocation, error) {
	query := `SELECT id, model, deployment_id, deployment_url, prompt, response, error, prompt_tokens, completion_tokens, duration_ms, created_at FROM invocations ORDER BY created_at DESC LIMIT ?`
	var invocations []Invocation
	err := sqlscan.Select(ctx, db, &invocations, query, limit)
	if err != nil {
		return nil, err
	}
	return invocations, nil
}

// ListInvocationsByModel retrieves recent invocations for one model
func ListInvocationsByModel(ctx context.Context, db sqlscan.Querier, model string, limit int) ([]Invocation, error) {
	query := `SELECT id, model, deployment_id, deployment_url, prompt, response, error, prompt_tokens, completion_tokens, duration_ms, created_at FROM invocations WHERE model = ? ORDER BY created_at DESC LIMIT ?`
	var invocations []Invocation
	err := sqlscan.Select(ctx, db, &invocations, query, model, limit)
	if err != nil {
		return nil, err
	}
	return invocations, nil
}
