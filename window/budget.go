package window

import "fmt"

// Budget is the token ceiling for one remote call: the conversation
// history plus the reserved response must fit inside MaxContextTokens.
type Budget struct {
	// MaxContextTokens is the model's total context window.
	MaxContextTokens int `json:"max_context_tokens" yaml:"max_context_tokens" toml:"max_context_tokens"`

	// MaxResponseTokens is reserved for the model's reply.
	MaxResponseTokens int `json:"max_response_tokens" yaml:"max_response_tokens" toml:"max_response_tokens"`
}

// Validate checks the budget invariants: both limits positive and the
// response reservation strictly smaller than the context window.
func (b Budget) Validate() error {
	if b.MaxContextTokens <= 0 {
		return fmt.Errorf("window: max_context_tokens must be positive, got %d", b.MaxContextTokens)
	}
	if b.MaxResponseTokens <= 0 {
		return fmt.Errorf("window: max_response_tokens must be positive, got %d", b.MaxResponseTokens)
	}
	if b.MaxResponseTokens >= b.MaxContextTokens {
		return fmt.Errorf("window: max_response_tokens (%d) must be less than max_context_tokens (%d)",
			b.MaxResponseTokens, b.MaxContextTokens)
	}
	return nil
}

// HistoryLimit returns the token budget left for conversation history
// after reserving the response.
func (b Budget) HistoryLimit() int {
	return b.MaxContextTokens - b.MaxResponseTokens
}
