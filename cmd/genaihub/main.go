package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// CLI represents the main CLI structure
type CLI struct {
	ServiceKey string `env:"GENAIHUB_SERVICE_KEY" help:"Path to the gateway service key file"`
	LogLevel   string `default:"warn" help:"Log level"`

	Token       TokenCmd       `cmd:"" help:"Obtain a bearer token from the auth server"`
	Deployments DeploymentsCmd `cmd:"" help:"Deployment listing and resolution"`
	Invoke      InvokeCmd      `cmd:"" help:"Send a prompt to a deployed model"`
	History     HistoryCmd     `cmd:"" help:"Show recorded invocations"`
	Config      ConfigCmd      `cmd:"" help:"Configuration inspection"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("genaihub"),
		kong.Description("Client for the generative AI model gateway"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	err := ctx.Run(&cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
