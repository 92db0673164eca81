package main

import (
	"context"
	"fmt"
)

// TokenCmd fetches a bearer token and prints it
type TokenCmd struct{}

// Run executes the token command
func (c *TokenCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	tokens, err := newTokenSource(cli, cfg)
	if err != nil {
		return err
	}

	token, err := tokens.Token(context.Background())
	if err != nil {
		return fmt.Errorf("failed to obtain token: %w", err)
	}

	fmt.Println(token)
	return nil
}
