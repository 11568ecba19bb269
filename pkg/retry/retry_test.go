package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/shop-assistant/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("transient")

func immediate() retry.Backoff {
	return retry.ConstantBackoff(time.Nanosecond)
}

func TestDo(t *testing.T) {
	t.Run("SucceedsFirstAttempt", func(t *testing.T) {
		calls := 0
		err := retry.Do(t.Context(), retry.Config{MaxAttempts: 3}, func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("RetriesUntilSuccess", func(t *testing.T) {
		calls := 0
		cfg := retry.Config{MaxAttempts: 5, Backoff: immediate()}

		err := retry.Do(t.Context(), cfg, func() error {
			calls++
			if calls < 3 {
				return errTransient
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("ExhaustsAttempts", func(t *testing.T) {
		calls := 0
		cfg := retry.Config{MaxAttempts: 4, Backoff: immediate()}

		err := retry.Do(t.Context(), cfg, func() error {
			calls++
			return errTransient
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, errTransient)
		assert.Equal(t, 4, calls)
	})

	t.Run("NonRetryableStopsImmediately", func(t *testing.T) {
		fatal := errors.New("fatal")
		calls := 0
		cfg := retry.Config{
			MaxAttempts: 5,
			Backoff:     immediate(),
			ShouldRetry: func(err error) bool { return !errors.Is(err, fatal) },
		}

		err := retry.Do(t.Context(), cfg, func() error {
			calls++
			return fatal
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, fatal)
		assert.Equal(t, 1, calls)
	})

	t.Run("CanceledContextBeforeStart", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		err := retry.Do(ctx, retry.Config{}, func() error {
			t.Fatal("fn must not run")
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("CanceledContextDuringBackoff", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cfg := retry.Config{
			MaxAttempts: 3,
			Backoff:     retry.ConstantBackoff(time.Minute),
		}

		err := retry.Do(ctx, cfg, func() error {
			cancel()
			return errTransient
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, err, errTransient)
	})
}

func TestDoWithResult(t *testing.T) {
	t.Run("ReturnsResult", func(t *testing.T) {
		cfg := retry.Config{MaxAttempts: 3, Backoff: immediate()}
		calls := 0

		got, err := retry.DoWithResult(t.Context(), cfg, func() (int, error) {
			calls++
			if calls < 2 {
				return 0, errTransient
			}
			return 42, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, got)
	})

	t.Run("ZeroValueOnFailure", func(t *testing.T) {
		cfg := retry.Config{MaxAttempts: 2, Backoff: immediate()}

		got, err := retry.DoWithResult(t.Context(), cfg, func() (string, error) {
			return "partial", errTransient
		})
		require.Error(t, err)
		assert.Empty(t, got)
	})
}
