package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Run("rejects an unknown level", func(t *testing.T) {
		err := Init(WithLevel("loud"))
		require.Error(t, err)
	})

	t.Run("initializes with defaults", func(t *testing.T) {
		err := Init()
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("repeated init is a no-op", func(t *testing.T) {
		require.NoError(t, Init())
		first := logger

		require.NoError(t, Init(WithLevel("debug")))
		assert.Same(t, first, logger)
	})
}

func TestLogHelpers(t *testing.T) {
	require.NoError(t, Init())

	ctx := t.Context()

	// The helpers must not panic once the logger is initialized.
	Debug(ctx, "debug message", "k", "v")
	Info(ctx, "info message", "k", "v")
	Warn(ctx, "warn message", "k", "v")
	Error(ctx, "error message", "k", "v")
}
