package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
)

// shutdownTimeout bounds how long in-flight requests may take to drain once
// a termination signal arrives.
const shutdownTimeout = 10 * time.Second

// serveCommand returns the CLI command that runs the JSON-RPC server.
//
// Usage example:
//
//	relay serve
//
// The process runs indefinitely until it receives an interrupt (SIGINT or
// SIGTERM), then drains in-flight requests before exiting.
func serveCommand(srv Server) *cli.Command {
	return &cli.Command{
		Name:        "serve",
		Description: "Starts the JSON-RPC server bridging Ethereum tooling onto the consensus network.",
		Usage:       "Runs the relay until Ctrl+C or a termination signal, then shuts down gracefully.",
		Action: func(ctx context.Context, c *cli.Command) error {
			quit := make(chan os.Signal, 1)
			defer close(quit)

			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			serveErr := make(chan error, 1)
			go func() {
				serveErr <- srv.Start()
			}()

			select {
			case err := <-serveErr:
				return err
			case <-quit:
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			return srv.Shutdown(shutdownCtx)
		},
	}
}
