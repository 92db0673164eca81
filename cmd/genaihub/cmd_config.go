package main

import (
	"fmt"
	"os"
	"text/tabwriter"
)

// ConfigCmd inspects the resolved configuration
type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" default:"1" help:"Show the resolved configuration"`
}

// ConfigShowCmd prints the resolved configuration with secrets redacted
type ConfigShowCmd struct{}

// Run executes the config show command
func (c *ConfigShowCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "auth_url\t%s\n", cfg.AuthURL)
	fmt.Fprintf(w, "client_id\t%s\n", cfg.ClientID)
	fmt.Fprintf(w, "client_secret\t%s\n", redact(cfg.ClientSecret))
	fmt.Fprintf(w, "api_base_url\t%s\n", cfg.APIBaseURL)
	fmt.Fprintf(w, "resource_group\t%s\n", cfg.ResourceGroup)
	fmt.Fprintf(w, "model\t%s\n", cfg.Model)
	fmt.Fprintf(w, "timeout\t%s\n", cfg.Timeout)
	fmt.Fprintf(w, "retry_interval\t%s\n", cfg.RetryInterval)
	fmt.Fprintf(w, "retry_ceiling\t%s\n", cfg.RetryCeiling)

	return nil
}

// redact hides all but the first characters of a secret
func redact(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + "****"
}
