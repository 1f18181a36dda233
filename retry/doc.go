// Package retry wraps remote calls with classification-driven retry and
// exponential backoff.
//
// A Classifier decides which errors are transient; everything it does
// not recognize is fatal and propagates immediately:
//
//	reply, err := retry.Do(ctx, retry.DefaultPolicy(), client.IsTransient,
//		func(ctx context.Context) (string, error) {
//			return caller.Send(ctx, messages, maxTokens)
//		})
//
// The default policy makes 5 attempts with backoff doubling from 4s and
// capped at 60s. Backoff sleeps select on the context, so cancellation
// unblocks a waiting retry promptly.
package retry
