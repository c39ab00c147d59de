package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fast returns a retrier with millisecond delays so tests stay quick.
func fast(opts ...Option) Retry {
	return New(append([]Option{
		WithDelay(time.Millisecond),
		WithMaxDelay(5 * time.Millisecond),
	}, opts...)...)
}

func TestExecute(t *testing.T) {
	t.Run("successful operation runs once", func(t *testing.T) {
		callCount := 0

		err := fast().Execute(t.Context(), func() error {
			callCount++
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 1, callCount)
	})

	t.Run("retries until success", func(t *testing.T) {
		callCount := 0

		err := fast(WithAttempts(3)).Execute(t.Context(), func() error {
			callCount++
			if callCount < 2 {
				return errors.New("temporary error")
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 2, callCount)
	})

	t.Run("exhausted attempts return the last error", func(t *testing.T) {
		callCount := 0
		persistent := errors.New("persistent error")

		err := fast(WithAttempts(3)).Execute(t.Context(), func() error {
			callCount++
			return persistent
		})

		require.ErrorIs(t, err, persistent)
		assert.Equal(t, 3, callCount)
	})

	t.Run("unrecoverable errors stop retrying", func(t *testing.T) {
		callCount := 0
		permanent := errors.New("permanent error")

		err := fast(WithAttempts(5)).Execute(t.Context(), func() error {
			callCount++
			return Unrecoverable(permanent)
		})

		require.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, callCount)
	})

	t.Run("context cancellation stops retrying", func(t *testing.T) {
		callCount := 0

		ctx, cancel := context.WithCancel(t.Context())
		r := New(WithAttempts(5), WithDelay(100*time.Millisecond))

		err := r.Execute(ctx, func() error {
			callCount++
			cancel()
			return errors.New("would normally trigger a retry")
		})

		require.Error(t, err)
		assert.Equal(t, 1, callCount)
	})
}

func TestOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		r, ok := New().(*retrier)
		require.True(t, ok)

		assert.Equal(t, uint(3), r.cfg.attempts)
		assert.Equal(t, 1*time.Second, r.cfg.delay)
		assert.Equal(t, 5*time.Second, r.cfg.maxDelay)
		assert.True(t, r.cfg.lastErrOnly)
	})

	t.Run("custom options", func(t *testing.T) {
		r, ok := New(
			WithAttempts(5),
			WithDelay(2*time.Second),
			WithMaxDelay(10*time.Second),
			WithLastErrorOnly(false),
		).(*retrier)
		require.True(t, ok)

		assert.Equal(t, uint(5), r.cfg.attempts)
		assert.Equal(t, 2*time.Second, r.cfg.delay)
		assert.Equal(t, 10*time.Second, r.cfg.maxDelay)
		assert.False(t, r.cfg.lastErrOnly)
	})
}
