package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ashivadi/genaihub/src/config"
	"github.com/ashivadi/genaihub/src/gateway"
	"github.com/ashivadi/genaihub/src/store"
)

// InvokeCmd sends a prompt to a deployed model
type InvokeCmd struct {
	Prompt      string   `arg:"" help:"Prompt to send"`
	Model       string   `help:"Model name (defaults to the configured model)"`
	System      string   `help:"Optional system message"`
	MaxTokens   int      `help:"Completion token limit" default:"0"`
	Temperature *float64 `help:"Sampling temperature"`
	Format      string   `help:"Output format (text, json)" default:"text"`
	NoHistory   bool     `help:"Skip recording the invocation"`
}

// Run executes the invoke command
func (c *InvokeCmd) Run(cli *CLI) error {
	client, cfg, err := newGatewayClient(cli)
	if err != nil {
		return err
	}

	model := c.Model
	if model == "" {
		model = cfg.Model
	}
	if model == "" {
		return fmt.Errorf("no model given and none configured")
	}

	ctx := context.Background()

	deployment, err := client.ResolveDeployment(ctx, model)
	if err != nil {
		return fmt.Errorf("failed to resolve deployment: %w", err)
	}

	var messages []gateway.ChatMessage
	if c.System != "" {
		messages = append(messages, gateway.ChatMessage{Role: "system", Content: c.System})
	}
	messages = append(messages, gateway.ChatMessage{Role: "user", Content: c.Prompt})

	req := &gateway.ChatRequest{
		Messages:    messages,
		Temperature: c.Temperature,
	}
	if c.MaxTokens > 0 {
		req.MaxTokens = &c.MaxTokens
	}

	start := time.Now()
	resp, invokeErr := client.InvokeDeployment(ctx, deployment.DeploymentURL, req)
	elapsed := time.Since(start)

	if !c.NoHistory {
		c.record(ctx, cli, model, deployment, resp, invokeErr, elapsed)
	}

	if invokeErr != nil {
		return fmt.Errorf("invocation failed: %w", invokeErr)
	}

	switch c.Format {
	case "json":
		return printJSON(resp)
	case "text":
		fmt.Println(resp.Content())
		return nil
	default:
		return fmt.Errorf("invalid format: %s", c.Format)
	}
}

// record writes the invocation to the history database. History is best
// effort; a storage problem must not fail the invocation itself.
func (c *InvokeCmd) record(ctx context.Context, cli *CLI, model string, deployment *gateway.Deployment, resp *gateway.ChatResponse, invokeErr error, elapsed time.Duration) {
	logger := createCLILogger(cli.LogLevel)

	db, err := store.Open(config.GetDefaultHistoryPath())
	if err != nil {
		logger.Warn("failed to open history database", "error", err)
		return
	}
	defer db.Close()

	inv := &store.Invocation{
		Model:         model,
		DeploymentID:  deployment.ID,
		DeploymentURL: deployment.DeploymentURL,
		Prompt:        c.Prompt,
		DurationMs:    elapsed.Milliseconds(),
	}
	if resp != nil {
		inv.Response = resp.Content()
		inv.PromptTokens = resp.Usage.PromptTokens
		inv.CompletionTokens = resp.Usage.CompletionTokens
	}
	if invokeErr != nil {
		inv.Error = invokeErr.Error()
	}

	if err := store.CreateInvocation(ctx, db.DB(), inv); err != nil {
		logger.Warn("failed to record invocation", "error", err)
	}
}
