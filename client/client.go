package client

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dagnazty/chatgpt-gui/ratelimit"
	"github.com/dagnazty/chatgpt-gui/retry"
	"github.com/dagnazty/chatgpt-gui/session"
	"github.com/dagnazty/chatgpt-gui/tokens"
	"github.com/dagnazty/chatgpt-gui/window"
)

// Warning carries non-fatal conditions that accompanied a successful
// send. The reply is still valid when a warning is set.
type Warning struct {
	// EvictedMessages is how many messages were dropped to fit the
	// token budget.
	EvictedMessages int

	// BudgetExceeded is true when the budget could not be met even
	// after eviction and the call proceeded over budget.
	BudgetExceeded bool
}

// Client exchanges messages with a remote text-generation service while
// honoring its call-rate and token-budget constraints. It threads one
// session through the rate limiter, the context-window manager, and the
// retrying caller.
//
// The rate limiter and retry path are safe for concurrent use, but a
// single Client prepares at most one outgoing message per session at a
// time; concurrent SendMessage calls against the same Client must be
// serialized by the caller.
type Client struct {
	caller   RemoteCaller
	limiter  *ratelimit.Limiter
	counter  *tokens.Counter
	manager  *window.Manager
	budget   window.Budget
	policy   retry.Policy
	classify retry.Classifier
	store    *session.Store

	sess *session.Session
}

// Option configures a Client.
type Option func(*Client)

// WithRateLimiter replaces the default limiter (60 calls per minute).
func WithRateLimiter(l *ratelimit.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithBudget replaces the default token budget (128000 context, 32768
// response).
func WithBudget(b window.Budget) Option {
	return func(c *Client) { c.budget = b }
}

// WithCounter replaces the default token counter.
func WithCounter(counter *tokens.Counter) Option {
	return func(c *Client) { c.counter = counter }
}

// WithRetryPolicy replaces the default retry policy.
func WithRetryPolicy(p retry.Policy) Option {
	return func(c *Client) { c.policy = p }
}

// WithClassifier replaces the default error classifier (IsTransient).
func WithClassifier(classify retry.Classifier) Option {
	return func(c *Client) { c.classify = classify }
}

// WithStore enables session persistence: the session is saved after
// every successful exchange.
func WithStore(store *session.Store) Option {
	return func(c *Client) { c.store = store }
}

// WithSession starts the client on an existing session instead of an
// empty one.
func WithSession(sess *session.Session) Option {
	return func(c *Client) { c.sess = sess }
}

// New creates a Client around the given remote caller.
func New(caller RemoteCaller, opts ...Option) (*Client, error) {
	if caller == nil {
		return nil, fmt.Errorf("client: remote caller is required")
	}

	c := &Client{
		caller: caller,
		budget: window.Budget{
			MaxContextTokens:  128000,
			MaxResponseTokens: 32768,
		},
		policy:   retry.DefaultPolicy(),
		classify: IsTransient,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.limiter == nil {
		limiter, err := ratelimit.New(60, time.Minute)
		if err != nil {
			return nil, err
		}
		c.limiter = limiter
	}
	if c.counter == nil {
		c.counter = tokens.NewCounterForModel(nil, "default")
	}
	c.manager = window.NewManager(c.counter)

	if err := c.budget.Validate(); err != nil {
		return nil, err
	}
	if err := c.policy.Validate(); err != nil {
		return nil, err
	}
	if c.sess == nil {
		c.sess = session.New("", "")
	}
	return c, nil
}

// Session returns the client's current session.
func (c *Client) Session() *session.Session {
	return c.sess
}

// StartNewSession replaces the current session with an empty one. If
// systemPrompt is non-empty it becomes the leading system message. The
// new session is saved immediately when a store is configured.
func (c *Client) StartNewSession(name, systemPrompt string) error {
	c.sess = session.New(name, systemPrompt)
	slog.Info("started new session", slog.String("name", c.sess.Name))
	if c.store != nil {
		return c.store.Save(c.sess)
	}
	return nil
}

// SendMessage appends userInput to the session, trims the session to the
// token budget, waits for a rate-limit slot, and invokes the remote
// caller with retry. On success the assistant's reply is appended to the
// session and returned.
//
// The returned Warning reports budget trouble that did not stop the
// call: evicted history, or proceeding over budget when nothing more
// could be evicted.
func (c *Client) SendMessage(ctx context.Context, userInput string) (string, Warning, error) {
	var warn Warning

	if strings.TrimSpace(userInput) == "" {
		return "", warn, ErrEmptyInput
	}

	c.sess.AppendUser(userInput)

	evicted, stillOver := c.manager.Enforce(c.sess, c.budget)
	warn.EvictedMessages = evicted
	warn.BudgetExceeded = stillOver

	if err := c.limiter.Acquire(ctx); err != nil {
		return "", warn, fmt.Errorf("acquire rate limit slot: %w", err)
	}

	reply, err := retry.Do(ctx, c.policy, c.classify,
		func(ctx context.Context) (string, error) {
			return c.caller.Send(ctx, c.sess.Messages, c.budget.MaxResponseTokens)
		})
	if err != nil {
		return "", warn, err
	}

	c.sess.AppendAssistant(reply)
	if c.store != nil {
		if err := c.store.Save(c.sess); err != nil {
			// The exchange succeeded; a failed save must not hide the reply.
			slog.Error("session save failed", slog.Any("error", err))
		}
	}
	return reply, warn, nil
}
