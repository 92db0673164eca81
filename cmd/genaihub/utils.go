package main

import (
	"fmt"

	"github.com/ashivadi/genaihub/src/auth"
	"github.com/ashivadi/genaihub/src/config"
	"github.com/ashivadi/genaihub/src/gateway"
)

// loadConfig builds the session configuration from the service key and
// environment.
func loadConfig(cli *CLI) (*config.Config, error) {
	cfg, err := config.NewLoader().Load(cli.ServiceKey)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// newTokenSource builds a token source from the session configuration.
func newTokenSource(cli *CLI, cfg *config.Config) (*auth.TokenSource, error) {
	tokens, err := auth.NewTokenSource(auth.Config{
		AuthURL:      cfg.AuthURL,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Timeout:      cfg.Timeout,
		Logger:       createCLILogger(cli.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create token source: %w", err)
	}
	return tokens, nil
}

// newGatewayClient wires config, auth, and gateway together for a command.
func newGatewayClient(cli *CLI) (*gateway.Client, *config.Config, error) {
	cfg, err := loadConfig(cli)
	if err != nil {
		return nil, nil, err
	}

	tokens, err := newTokenSource(cli, cfg)
	if err != nil {
		return nil, nil, err
	}

	client := gateway.NewClient(gateway.Config{
		BaseURL:       cfg.APIBaseURL,
		Tokens:        tokens,
		ResourceGroup: cfg.ResourceGroup,
		APIVersion:    cfg.APIVersion,
		Logger:        createCLILogger(cli.LogLevel),
		Timeout:       cfg.Timeout,
		RetryInterval: cfg.RetryInterval,
		RetryCeiling:  cfg.RetryCeiling,
	})

	return client, cfg, nil
}
