package retry

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"
)

// Policy controls how many times a call is attempted and how long to
// back off between attempts. The delay before attempt n (n >= 2) is
//
//	min(BaseDelay * Multiplier^(n-2), MaxDelay)
//
// which is non-decreasing and capped at MaxDelay.
type Policy struct {
	// MaxAttempts is the total number of invocations, including the
	// first. Must be at least 1.
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts" toml:"max_attempts"`

	// BaseDelay is the backoff before the second attempt.
	BaseDelay time.Duration `json:"base_delay" yaml:"base_delay" toml:"base_delay"`

	// Multiplier scales the delay after each failed attempt.
	Multiplier float64 `json:"multiplier" yaml:"multiplier" toml:"multiplier"`

	// MaxDelay caps the backoff.
	MaxDelay time.Duration `json:"max_delay" yaml:"max_delay" toml:"max_delay"`

	// Jitter randomizes each delay by up to +/-25% to avoid retry
	// stampedes. Off by default.
	Jitter bool `json:"jitter" yaml:"jitter" toml:"jitter"`
}

// DefaultPolicy returns the policy used for remote completion calls:
// 5 attempts with exponential backoff from 4s to a 60s cap.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 5,
		BaseDelay:   4 * time.Second,
		Multiplier:  2,
		MaxDelay:    60 * time.Second,
	}
}

// Validate checks the policy invariants.
func (p Policy) Validate() error {
	if p.MaxAttempts < 1 {
		return fmt.Errorf("retry: max_attempts must be >= 1, got %d", p.MaxAttempts)
	}
	if p.BaseDelay < 0 {
		return fmt.Errorf("retry: base_delay must be >= 0, got %v", p.BaseDelay)
	}
	if p.Multiplier < 1 {
		return fmt.Errorf("retry: multiplier must be >= 1, got %v", p.Multiplier)
	}
	if p.MaxDelay < p.BaseDelay {
		return fmt.Errorf("retry: max_delay (%v) must be >= base_delay (%v)", p.MaxDelay, p.BaseDelay)
	}
	return nil
}

// Delay returns the backoff before the given attempt (1-based). The
// delay before the first attempt is always zero.
func (p Policy) Delay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}
	d := float64(p.BaseDelay)
	for i := 2; i < attempt; i++ {
		d *= p.Multiplier
		if d >= float64(p.MaxDelay) {
			break
		}
	}
	if d > float64(p.MaxDelay) {
		d = float64(p.MaxDelay)
	}
	return time.Duration(d)
}

// Classifier reports whether an error is transient and worth retrying.
// Errors it does not recognize must be reported as fatal (fail closed)
// so unknown failure modes cannot loop forever.
type Classifier func(error) bool

// Do invokes fn up to policy.MaxAttempts times, backing off between
// attempts. Only errors the classifier marks transient are retried;
// anything else propagates immediately. After the attempts are
// exhausted, the last transient error is returned rather than swallowed.
//
// The backoff sleep is cancellable: if ctx is done mid-wait, Do returns
// ctx.Err() without another attempt.
func Do[T any](ctx context.Context, policy Policy, classify Classifier, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if err := policy.Validate(); err != nil {
		return zero, err
	}
	if classify == nil {
		classify = func(error) bool { return false }
	}

	var lastErr error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		if delay := jittered(policy, attempt); delay > 0 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		if !classify(err) {
			return zero, err
		}
		lastErr = err

		slog.Warn("transient remote call failure",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", policy.MaxAttempts),
			slog.Any("error", err))
	}
	return zero, lastErr
}

// jittered applies the policy's optional jitter to the backoff before
// the given attempt.
func jittered(policy Policy, attempt int) time.Duration {
	delay := policy.Delay(attempt)
	if delay <= 0 || !policy.Jitter {
		return delay
	}
	// +/-25%
	factor := 0.75 + rand.Float64()*0.5
	return time.Duration(float64(delay) * factor)
}
