// Package ratelimit provides token-bucket admission control for remote
// API calls.
//
// A Limiter admits maxCalls per period, refilling continuously:
//
//	limiter, err := ratelimit.New(60, time.Minute)
//	if err != nil {
//		return err
//	}
//
//	// Blocks until a slot is free or the context is cancelled.
//	if err := limiter.Acquire(ctx); err != nil {
//		return err
//	}
//
// Hitting the limit is not an error; Acquire absorbs it by blocking.
// The only error Acquire returns is the context's, so shutdown can
// unblock waiters promptly.
//
// For non-blocking admission checks use TryAcquire:
//
//	if !limiter.TryAcquire() {
//		// shed load instead of queueing
//	}
package ratelimit
