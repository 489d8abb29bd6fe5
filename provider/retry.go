package provider

import (
	"context"
	"errors"
	"time"

	"github.com/0xPolygon/zero-coordinator/log"
)

const maxBackoff = 30 * time.Second

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Retrier runs a call up to MaxRetries+1 times, doubling the wait between attempts.
type Retrier struct {
	Backoff    time.Duration
	MaxRetries uint
	logger     *log.Logger
}

// NewRetrier returns a Retrier
func NewRetrier(logger *log.Logger, backoff time.Duration, maxRetries uint) *Retrier {
	return &Retrier{Backoff: backoff, MaxRetries: maxRetries, logger: logger}
}

// Do runs fn until it succeeds, fails permanently, the retries are exhausted
// or ctx is done. The last error is returned.
func (r *Retrier) Do(ctx context.Context, funcName string, fn func() error) error {
	wait := r.Backoff
	for attempt := uint(0); ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		var permanent *permanentError
		if errors.As(err, &permanent) {
			return permanent.err
		}
		if ctx.Err() != nil || attempt >= r.MaxRetries {
			return err
		}
		r.logger.Warnf("%s failed (attempt %d/%d), retrying in %s: %v", funcName, attempt+1, r.MaxRetries+1, wait, err)
		select {
		case <-ctx.Done():
			return err
		case <-time.After(wait):
		}
		wait *= 2
		if wait > maxBackoff {
			wait = maxBackoff
		}
	}
}
