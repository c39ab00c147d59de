// Package cli wires the relay's entry points into a command-line interface.
package cli

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"
)

// Server is the long-running JSON-RPC listener controlled by the serve
// command.
type Server interface {
	// Start blocks serving requests until Shutdown is called.
	Start() error

	// Shutdown drains in-flight requests and stops the listener.
	Shutdown(ctx context.Context) error
}

// GasPriceSource is the slice of the consensus adapter used by the gas-price
// command.
type GasPriceSource interface {
	GasPriceInTinybars(ctx context.Context) (int64, error)
}

// Run initializes and executes the relay CLI application.
//
// It registers all available commands:
//
//   - `serve`: Runs the JSON-RPC server until interrupted.
//   - `gas-price`: Derives and prints the current gas price.
func Run(ctx context.Context, srv Server, prices GasPriceSource) error {
	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "relay",
		Description:           "Command-line interface for running the Hedera JSON-RPC relay.",
		Usage:                 "relay [command] [flags]",
		Commands: []*cli.Command{
			serveCommand(srv),
			gasPriceCommand(prices),
		},
	}

	return app.Run(ctx, os.Args)
}
