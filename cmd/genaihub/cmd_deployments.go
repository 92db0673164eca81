package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/ashivadi/genaihub/src/gateway"
)

// DeploymentsCmd manages deployment operations
type DeploymentsCmd struct {
	List    DeploymentsListCmd    `cmd:"" help:"List deployments in the resource group"`
	Get     DeploymentsGetCmd     `cmd:"" help:"Get a single deployment by ID"`
	Resolve DeploymentsResolveCmd `cmd:"" help:"Resolve a model name to its deployment"`
}

// DeploymentsListCmd lists deployments
type DeploymentsListCmd struct {
	Format string `help:"Output format (table, json)" default:"table"`
}

// Run executes the deployments list command
func (c *DeploymentsListCmd) Run(cli *CLI) error {
	client, _, err := newGatewayClient(cli)
	if err != nil {
		return err
	}

	deployments, err := client.ListDeployments(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list deployments: %w", err)
	}

	switch c.Format {
	case "json":
		return printJSON(deployments)
	case "table":
		return printDeploymentsTable(deployments)
	default:
		return fmt.Errorf("invalid format: %s", c.Format)
	}
}

// DeploymentsGetCmd gets a single deployment
type DeploymentsGetCmd struct {
	ID     string `arg:"" help:"Deployment ID"`
	Wait   bool   `help:"Poll until the deployment is running"`
	Format string `help:"Output format (table, json)" default:"table"`
}

// Run executes the deployments get command
func (c *DeploymentsGetCmd) Run(cli *CLI) error {
	client, _, err := newGatewayClient(cli)
	if err != nil {
		return err
	}

	var deployment *gateway.Deployment
	if c.Wait {
		deployment, err = client.WaitForDeployment(context.Background(), c.ID)
	} else {
		deployment, err = client.GetDeployment(context.Background(), c.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to get deployment: %w", err)
	}

	switch c.Format {
	case "json":
		return printJSON(deployment)
	case "table":
		return printDeploymentsTable([]*gateway.Deployment{deployment})
	default:
		return fmt.Errorf("invalid format: %s", c.Format)
	}
}

// DeploymentsResolveCmd resolves a model name to a deployment
type DeploymentsResolveCmd struct {
	Model  string `arg:"" optional:"" help:"Model name (defaults to the configured model)"`
	Format string `help:"Output format (table, json)" default:"table"`
}

// Run executes the deployments resolve command
func (c *DeploymentsResolveCmd) Run(cli *CLI) error {
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

	deployment, err := client.ResolveDeployment(context.Background(), model)
	if err != nil {
		return fmt.Errorf("failed to resolve deployment: %w", err)
	}

	switch c.Format {
	case "json":
		return printJSON(deployment)
	case "table":
		return printDeploymentsTable([]*gateway.Deployment{deployment})
	default:
		return fmt.Errorf("invalid format: %s", c.Format)
	}
}

// printDeploymentsTable prints deployments in a tabular format
func printDeploymentsTable(deployments []*gateway.Deployment) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tMODEL\tSTATUS\tURL")
	for _, d := range deployments {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.ID, d.Model(), d.Status, d.DeploymentURL)
	}

	return nil
}

// printJSON prints any value as indented JSON
func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
