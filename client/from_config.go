package client

import (
	"github.com/dagnazty/chatgpt-gui/config"
	"github.com/dagnazty/chatgpt-gui/ratelimit"
	"github.com/dagnazty/chatgpt-gui/session"
	"github.com/dagnazty/chatgpt-gui/tokens"
)

// NewFromConfig assembles a Client from a validated configuration: the
// named registered caller, a rate limiter, an estimating token counter
// with the model's overhead profile, and optional session persistence.
//
// The credential is opaque to this package; it is handed to the caller
// factory untouched.
func NewFromConfig(cfg config.Config, credential string) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	caller, err := NewCaller(cfg.Caller, CallerConfig{
		Model:      cfg.Model,
		Credential: credential,
	})
	if err != nil {
		return nil, err
	}

	limiter, err := ratelimit.New(cfg.RateLimit.MaxCalls, cfg.RateLimit.Period.Std())
	if err != nil {
		return nil, err
	}

	tokenizer := tokens.NewEstimatingTokenizerWithRatio(cfg.Tokenizer.CharsPerToken)
	counter := tokens.NewCounter(tokenizer, tokens.OverheadsForModel(cfg.Model))

	opts := []Option{
		WithRateLimiter(limiter),
		WithBudget(cfg.Budget),
		WithCounter(counter),
		WithRetryPolicy(cfg.Retry.ToPolicy()),
		WithSession(session.New("", cfg.SystemPrompt)),
	}
	if cfg.SessionDir != "" {
		store, err := session.NewStore(cfg.SessionDir)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithStore(store))
	}

	return New(caller, opts...)
}
