// Package retry runs I/O calls again on transient failure.
package retry

import (
	"context"
	"errors"
	"log"
	"time"
)

// Policy controls how often and how patiently a call is retried.
type Policy struct {
	Attempts int
	Backoff  time.Duration
}

var Default = Policy{Attempts: 3, Backoff: 100 * time.Millisecond}

type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying. Do returns the wrapped error.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Do calls fn until it succeeds, returns a permanent error, or attempts run out.
// The backoff doubles after each failure and waiting respects ctx cancellation.
func Do(ctx context.Context, name string, p Policy, fn func(ctx context.Context) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	backoff := p.Backoff

	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		var pe *permanentError
		if errors.As(err, &pe) {
			return pe.err
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		if attempt == attempts {
			break
		}

		log.Printf("retry: op=%s attempt=%d backoff=%dms err=%v", name, attempt, backoff.Milliseconds(), err)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return lastErr
}
