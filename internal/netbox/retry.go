package netbox

import (
	"context"
	"time"
)

// RetryPolicy bounds how transient failures are retried: a fixed number of
// retries with exponential backoff between attempts.
type RetryPolicy struct {
	// Retries is how many times a transient failure is retried after the
	// initial attempt. Zero disables retrying.
	Retries int

	// BaseDelay is the delay before the first retry; each subsequent
	// retry doubles it.
	BaseDelay time.Duration

	// MaxDelay caps the backoff delay.
	MaxDelay time.Duration
}

// DefaultRetryPolicy matches the tool's config defaults.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Retries:   3,
		BaseDelay: 500 * time.Millisecond,
		MaxDelay:  8 * time.Second,
	}
}

// Do runs fn until it succeeds, fails terminally, or the retry budget is
// exhausted. The loop is a small explicit state machine: attempt counter,
// current delay, terminal classification. Non-transient errors are
// returned immediately; the last transient error is returned once the
// budget runs out.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	delay := p.BaseDelay
	for attempt := 0; ; attempt++ {
		err := fn()
		if err == nil || !IsTransient(err) {
			return err
		}
		if attempt >= p.Retries {
			return err
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
		if p.MaxDelay > 0 && delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}
}
