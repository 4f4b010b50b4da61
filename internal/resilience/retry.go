package resilience

import (
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// Policy controls retry pacing. Delays double after each attempt with full
// jitter, capped at MaxDelay.
type Policy struct {
	// Attempts is the total number of tries, including the first. Values
	// below 1 mean a single try.
	Attempts int

	// BaseDelay seeds the backoff. Default 400ms.
	BaseDelay time.Duration

	// MaxDelay caps the backoff. Default 10s.
	MaxDelay time.Duration
}

// DefaultPolicy suits an interactive chat turn: a couple of quick retries,
// never making the customer wait long.
func DefaultPolicy() Policy {
	return Policy{Attempts: 3, BaseDelay: 400 * time.Millisecond, MaxDelay: 10 * time.Second}
}

func (p Policy) normalized() Policy {
	if p.Attempts < 1 {
		p.Attempts = 1
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = 400 * time.Millisecond
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = 10 * time.Second
	}
	return p
}

// delay returns the full-jitter backoff for a zero-based attempt index.
func (p Policy) delay(attempt int) time.Duration {
	d := p.BaseDelay << uint(attempt)
	if d <= 0 || d > p.MaxDelay {
		d = p.MaxDelay
	}
	return time.Duration(rand.Int64N(int64(d) + 1))
}

// Do runs fn until it succeeds, returns a non-transient error, the policy
// is exhausted, or ctx is done. Each retry is logged under op.
func Do(ctx context.Context, p Policy, op string, fn func(context.Context) error) error {
	_, err := DoVal(ctx, p, op, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// DoVal is Do for functions that return a value.
func DoVal[T any](ctx context.Context, p Policy, op string, fn func(context.Context) (T, error)) (T, error) {
	p = p.normalized()

	var zero T
	var lastErr error
	for attempt := 0; attempt < p.Attempts; attempt++ {
		val, err := fn(ctx)
		if err == nil {
			return val, nil
		}
		lastErr = err

		if ctx.Err() != nil || !IsTransient(err) || attempt == p.Attempts-1 {
			return zero, lastErr
		}

		wait := p.delay(attempt)
		zap.L().Warn("retrying after transient failure",
			zap.String("op", op),
			zap.Int("attempt", attempt+1),
			zap.Duration("wait", wait),
			zap.Error(err),
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, lastErr
		case <-timer.C:
		}
	}

	return zero, lastErr
}
