package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/ashivadi/genaihub/src/config"
	"github.com/ashivadi/genaihub/src/store"
)

// HistoryCmd shows recorded invocations
type HistoryCmd struct {
	Limit  int    `help:"Maximum number of entries" default:"20"`
	Model  string `help:"Only show invocations of this model"`
	Format string `help:"Output format (table, json)" default:"table"`
}

// Run executes the history command
func (c *HistoryCmd) Run(cli *CLI) error {
	db, err := store.Open(config.GetDefaultHistoryPath())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	var invocations []store.Invocation
	if c.Model != "" {
		invocations, err = store.ListInvocationsByModel(ctx, db.DB(), c.Model, c.Limit)
	} else {
		invocations, err = store.ListInvocations(ctx, db.DB(), c.Limit)
	}
	if err != nil {
		return fmt.Errorf("failed to list invocations: %w", err)
	}

	switch c.Format {
	case "json":
		return printJSON(invocations)
	case "table":
		return printHistoryTable(invocations)
	default:
		return fmt.Errorf("invalid format: %s", c.Format)
	}
}

// printHistoryTable prints invocations in a tabular format
func printHistoryTable(invocations []store.Invocation) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "WHEN\tMODEL\tTOKENS\tDURATION\tPROMPT")
	for _, inv := range invocations {
		status := truncate(inv.Prompt, 48)
		if inv.Error != "" {
			status = "error: " + truncate(inv.Error, 40)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%dms\t%s\n",
			inv.CreatedAt.Format("2006-01-02 15:04:05"),
			inv.Model,
			inv.PromptTokens+inv.CompletionTokens,
			inv.DurationMs,
			status,
		)
	}

	return nil
}

// truncate shortens s to at most n runes
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
