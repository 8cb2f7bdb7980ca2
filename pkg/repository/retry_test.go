package repository

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := retry(ctx, 3, time.Millisecond, func() error {
			calls++
			if calls < 3 {
				return retryable(errors.New("transient"))
			}
			return nil
		})
		if err != nil {
			t.Fatalf("retry() error = %v", err)
		}
		if calls != 3 {
			t.Errorf("calls = %d, want 3", calls)
		}
	})

	t.Run("stops on permanent error", func(t *testing.T) {
		calls := 0
		err := retry(ctx, 3, time.Millisecond, func() error {
			calls++
			return errors.New("permanent")
		})
		if err == nil || calls != 1 {
			t.Errorf("retry() = %v after %d calls, want error after 1", err, calls)
		}
	})

	t.Run("returns last error when exhausted", func(t *testing.T) {
		calls := 0
		err := retry(ctx, 2, time.Millisecond, func() error {
			calls++
			return retryable(errors.New("still down"))
		})
		if err == nil || err.Error() != "still down" || calls != 2 {
			t.Errorf("retry() = %v after %d calls", err, calls)
		}
	})

	t.Run("zero attempts runs once", func(t *testing.T) {
		calls := 0
		_ = retry(ctx, 0, time.Millisecond, func() error { calls++; return nil })
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("context cancelled during backoff", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := retry(cctx, 3, time.Hour, func() error {
			return retryable(errors.New("transient"))
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("retry() = %v, want context.Canceled", err)
		}
	})
}
