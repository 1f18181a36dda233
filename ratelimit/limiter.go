package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Limiter is a thread-safe token bucket: capacity of maxCalls admission
// tokens, refilled continuously at maxCalls/period. Acquire blocks the
// calling goroutine until a token is available.
//
// Acquisition order across goroutines is not FIFO: after a refill,
// whichever waiter re-checks first wins. This is an accepted fairness
// trade-off; no waiter starves as long as the arrival rate stays at or
// below the refill rate.
type Limiter struct {
	maxCalls int
	period   time.Duration

	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time

	// Test hooks. Overridden only by tests; production code uses the
	// real clock.
	now   func() time.Time
	after func(time.Duration) <-chan time.Time
}

// New creates a limiter admitting maxCalls per period. maxCalls and
// period must be positive: the wait step is period/maxCalls, so a zero
// maxCalls would divide by zero.
func New(maxCalls int, period time.Duration) (*Limiter, error) {
	if maxCalls <= 0 {
		return nil, fmt.Errorf("ratelimit: maxCalls must be positive, got %d", maxCalls)
	}
	if period <= 0 {
		return nil, fmt.Errorf("ratelimit: period must be positive, got %v", period)
	}
	l := &Limiter{
		maxCalls: maxCalls,
		period:   period,
		tokens:   float64(maxCalls),
		now:      time.Now,
		after:    time.After,
	}
	l.lastRefill = l.now()
	slog.Debug("rate limiter initialized",
		slog.Int("max_calls", maxCalls),
		slog.Duration("period", period))
	return l, nil
}

// Acquire blocks until one admission token is available, then consumes
// it. It returns a non-nil error only when the context is cancelled
// while waiting; running out of tokens is absorbed by blocking, never
// surfaced.
func (l *Limiter) Acquire(ctx context.Context) error {
	// Iterative wait loop: sleep in period/maxCalls steps and re-check,
	// holding the lock only while touching bucket state.
	for {
		if l.TryAcquire() {
			return nil
		}

		wait := l.period / time.Duration(l.maxCalls)
		slog.Debug("rate limit reached, waiting", slog.Duration("wait", wait))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.after(wait):
		}
	}
}

// TryAcquire consumes a token if one is available, without blocking.
func (l *Limiter) TryAcquire() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	if l.tokens >= 1 {
		l.tokens--
		return true
	}
	return false
}

// Tokens returns the number of whole tokens currently in the bucket.
func (l *Limiter) Tokens() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	return int(l.tokens)
}

// refill adds whole tokens for the time elapsed since the last refill,
// capped at capacity. The refill timestamp advances only when at least
// one whole token was added, so sub-token elapsed time keeps
// accumulating between calls. Caller must hold l.mu.
func (l *Limiter) refill() {
	elapsed := l.now().Sub(l.lastRefill)
	refill := elapsed.Seconds() / l.period.Seconds() * float64(l.maxCalls)
	if refill < 1 {
		return
	}
	whole := float64(int(refill))
	l.tokens = min(float64(l.maxCalls), l.tokens+whole)
	l.lastRefill = l.now()
}
