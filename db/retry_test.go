package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryOnLock(t *testing.T) {
	t.Run("SucceedsAfterLock", func(t *testing.T) {
		calls := 0
		err := RetryOnLock(context.Background(), func() error {
			calls++
			if calls == 1 {
				return errors.New("database is locked")
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("OtherErrorsAreNotRetried", func(t *testing.T) {
		calls := 0
		want := errors.New("syntax error")
		err := RetryOnLock(context.Background(), func() error {
			calls++
			return want
		})
		assert.ErrorIs(t, err, want)
		assert.Equal(t, 1, calls)
	})

	t.Run("StopsOnCancelledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := RetryOnLock(ctx, func() error { return errors.New("database is locked") })
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("NoDelayAfterLastAttempt", func(t *testing.T) {
		var delays []time.Duration
		orig := after
		after = func(d time.Duration) <-chan time.Time {
			delays = append(delays, d)
			ch := make(chan time.Time, 1)
			ch <- time.Time{}
			return ch
		}
		t.Cleanup(func() { after = orig })

		calls := 0
		err := RetryOnLock(context.Background(), func() error {
			calls++
			return errors.New("database is locked")
		})
		assert.ErrorContains(t, err, "database is locked")
		assert.Equal(t, lockRetries, calls)
		assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, delays)
	})
}
