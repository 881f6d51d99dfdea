package db

import (
	"context"
	"log"
	"strings"
	"time"
)

const (
	lockRetries   = 3
	lockBaseDelay = 100 * time.Millisecond
)

var after = time.After

// RetryOnLock re-runs operation while SQLite reports the database as locked,
// backing off 100ms then 200ms between attempts. Other errors, and the last
// locked attempt, return immediately.
func RetryOnLock(ctx context.Context, operation func() error) error {
	var err error
	for i := 0; i < lockRetries; i++ {
		err = operation()
		if err == nil || !isLockError(err) {
			return err
		}
		if i == lockRetries-1 {
			break
		}

		delay := lockBaseDelay * time.Duration(1<<i)
		log.Printf("Database locked, retrying in %v...", delay)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-after(delay):
		}
	}
	return err
}

func isLockError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "database table is locked")
}
