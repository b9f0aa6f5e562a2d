package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a transient failure that [Policy.Do] may retry.
// After, when positive, is the wait the server asked for (Retry-After) and
// replaces the computed backoff for the next attempt.
type RetryableError struct {
	Err   error
	After time.Duration
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Policy says how often and how patiently to retry.
type Policy struct {
	// Attempts including the first; values below 1 mean 1.
	Attempts int
	// Backoff before the first retry. It doubles after each failure.
	Backoff time.Duration
	// MaxBackoff caps any single wait, including server hints. Zero means
	// no cap.
	MaxBackoff time.Duration
}

// DefaultPolicy is used by crawl store clients unless configured otherwise.
var DefaultPolicy = Policy{Attempts: 3, Backoff: time.Second, MaxBackoff: 30 * time.Second}

// Do calls fn until it succeeds, returns an error that is not a
// [RetryableError], or the attempts run out. It returns the last error, or
// ctx.Err() when ctx ends during a wait.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	attempts := max(p.Attempts, 1)
	delay := p.Backoff

	var lastErr error
	for i := range attempts {
		lastErr = fn()
		var re *RetryableError
		if lastErr == nil || !errors.As(lastErr, &re) {
			return lastErr
		}
		if i == attempts-1 {
			break
		}

		wait := delay
		if re.After > 0 {
			wait = re.After
		}
		if p.MaxBackoff > 0 && wait > p.MaxBackoff {
			wait = p.MaxBackoff
		}
		if err := sleep(ctx, wait); err != nil {
			return err
		}
		delay *= 2
	}
	return lastErr
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
