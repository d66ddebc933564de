// Package backoff retries failing calls with exponentially growing pauses.
package backoff

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// Policy describes how often and how patiently to retry.
type Policy struct {
	// Attempts is the total number of calls, including the first one.
	Attempts int

	// Base is the pause after the first failure. It doubles after every
	// further failure up to Max.
	Base time.Duration
	Max  time.Duration

	// Jitter adds up to this much random delay to every pause.
	Jitter time.Duration
}

// Default waits min(1s·2ⁿ, 30s) between three attempts.
var Default = Policy{
	Attempts: 3,
	Base:     time.Second,
	Max:      30 * time.Second,
}

// Delay is the pause before retry number n (0-based), without jitter.
func (p Policy) Delay(n int) time.Duration {
	if n < 0 {
		n = 0
	}

	d := p.Base
	for i := 0; i < n; i++ {
		d *= 2
		if p.Max > 0 && d >= p.Max {
			return p.Max
		}
	}

	if p.Max > 0 && d > p.Max {
		return p.Max
	}
	return d
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Retry calls fn until it succeeds, returns a Permanent error, the attempts
// run out or ctx is done. The last error is returned unwrapped.
func Retry(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	attempts := max(p.Attempts, 1)

	var err error
	for n := 0; n < attempts; n++ {
		if n > 0 {
			pause := p.Delay(n - 1)
			if p.Jitter > 0 {
				pause += time.Duration(rand.Int63n(int64(p.Jitter)))
			}

			timer := time.NewTimer(pause)
			select {
			case <-ctx.Done():
				timer.Stop()
				return errors.Join(err, ctx.Err())
			case <-timer.C:
			}
		}

		err = fn(ctx)
		if err == nil {
			return nil
		}

		var permanent *permanentError
		if errors.As(err, &permanent) {
			return permanent.err
		}
	}

	return err
}
