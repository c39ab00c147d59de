package cli

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

// serverFake implements the Server interface with scriptable outcomes.
type serverFake struct {
	startErr error

	started  bool
	shutdown bool
}

var _ Server = (*serverFake)(nil)

func (f *serverFake) Start() error {
	f.started = true
	return f.startErr
}

func (f *serverFake) Shutdown(context.Context) error {
	f.shutdown = true
	return nil
}

// gasPriceFake implements the GasPriceSource interface.
type gasPriceFake struct {
	tinybars int64
	err      error
}

var _ GasPriceSource = (*gasPriceFake)(nil)

func (f *gasPriceFake) GasPriceInTinybars(context.Context) (int64, error) {
	return f.tinybars, f.err
}

func TestRun(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	t.Run("help runs without error", func(t *testing.T) {
		os.Args = []string{"relay", "--help"}

		err := Run(t.Context(), &serverFake{}, &gasPriceFake{})
		assert.NoError(t, err)
	})

	t.Run("serve propagates a failed listener", func(t *testing.T) {
		os.Args = []string{"relay", "serve"}
		srv := &serverFake{startErr: errors.New("address already in use")}

		err := Run(t.Context(), srv, &gasPriceFake{})
		require.Error(t, err)
		assert.True(t, srv.started)
		assert.False(t, srv.shutdown)
	})

	t.Run("gas-price queries the adapter", func(t *testing.T) {
		os.Args = []string{"relay", "gas-price"}

		err := Run(t.Context(), &serverFake{}, &gasPriceFake{tinybars: 72})
		assert.NoError(t, err)
	})

	t.Run("gas-price propagates adapter failures", func(t *testing.T) {
		os.Args = []string{"relay", "gas-price"}

		err := Run(t.Context(), &serverFake{}, &gasPriceFake{err: errors.New("node unreachable")})
		require.Error(t, err)
	})
}

func TestServeCommand(t *testing.T) {
	t.Run("command metadata", func(t *testing.T) {
		cmd := serveCommand(&serverFake{})

		assert.Equal(t, "serve", cmd.Name)
		assert.Empty(t, cmd.Flags)
		assert.NotNil(t, cmd.Action)
	})

	t.Run("returns immediately when the server fails to start", func(t *testing.T) {
		srv := &serverFake{startErr: errors.New("bind failed")}

		app := &cli.Command{Commands: []*cli.Command{serveCommand(srv)}}
		err := app.Run(t.Context(), []string{"relay", "serve"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "bind failed")
	})
}

func TestGasPriceCommand(t *testing.T) {
	t.Run("command metadata", func(t *testing.T) {
		cmd := gasPriceCommand(&gasPriceFake{})

		assert.Equal(t, "gas-price", cmd.Name)
		assert.NotNil(t, cmd.Action)
	})
}
