// Package client orchestrates one conversation against a rate-limited,
// token-budgeted remote text-generation service.
//
// A Client owns one session and, per outgoing message: appends the user
// message, evicts old history to fit the token budget, blocks for a
// rate-limit slot, and invokes the injected RemoteCaller with
// classification-driven retry. Successful replies are appended to the
// session (and saved when a store is configured).
//
//	caller, _ := client.NewCaller("openai", client.CallerConfig{
//		Model:      "o1-preview",
//		Credential: os.Getenv("OPENAI_API_KEY"),
//	})
//	c, _ := client.New(caller,
//		client.WithBudget(window.Budget{MaxContextTokens: 128000, MaxResponseTokens: 32768}),
//	)
//	reply, warn, err := c.SendMessage(ctx, "Hello!")
//
// # Error taxonomy
//
// Remote callers report failures through a closed set of sentinel
// errors. ErrTimeout, ErrUnavailable, ErrRateLimited, and
// ErrAPIRetryable are transient and retried per policy; ErrAuthentication
// and ErrMalformedRequest surface immediately. Unrecognized errors are
// treated as fatal so an unknown failure mode can never retry forever.
// Local rate limiting is never an error: the limiter absorbs it by
// blocking. Budget trouble is reported through the Warning return, not
// an error, and the call proceeds.
package client
