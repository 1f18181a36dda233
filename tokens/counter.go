package tokens

import (
	"log/slog"

	"github.com/dagnazty/chatgpt-gui/session"
)

// Overheads holds the fixed per-message token costs a chat API adds on
// top of the raw text. The exact values are tokenizer/model-specific.
type Overheads struct {
	// PerMessage is added once for every message in the conversation.
	PerMessage int

	// PerName is added (usually negative) when a message carries a name.
	PerName int

	// ReplyPrimer is added once per conversation for the tokens that
	// prime the assistant's reply.
	ReplyPrimer int
}

// modelOverheads maps model names to their message overheads.
// Models not listed fall back to the "default" entry.
var modelOverheads = map[string]Overheads{
	"gpt-3.5-turbo": {PerMessage: 4, PerName: -1, ReplyPrimer: 2},
	"gpt-4":         {PerMessage: 3, PerName: 1, ReplyPrimer: 3},
	"o1-preview":    {PerMessage: 4, PerName: -1, ReplyPrimer: 2},

	"default": {PerMessage: 4, PerName: -1, ReplyPrimer: 2},
}

// OverheadsForModel returns the message overheads for a model, or the
// default set if the model is unknown.
func OverheadsForModel(model string) Overheads {
	if o, ok := modelOverheads[model]; ok {
		return o
	}
	return modelOverheads["default"]
}

// Counter computes the total token cost of a conversation using an
// injected Tokenizer plus fixed per-message overheads.
type Counter struct {
	tokenizer Tokenizer
	overheads Overheads
}

// NewCounter creates a counter. A nil tokenizer falls back to the
// estimating tokenizer.
func NewCounter(tokenizer Tokenizer, overheads Overheads) *Counter {
	if tokenizer == nil {
		tokenizer = NewEstimatingTokenizer()
	}
	return &Counter{tokenizer: tokenizer, overheads: overheads}
}

// NewCounterForModel creates a counter with the overheads registered for
// the given model.
func NewCounterForModel(tokenizer Tokenizer, model string) *Counter {
	return NewCounter(tokenizer, OverheadsForModel(model))
}

// Count returns the total token cost of the messages: tokenizer length
// of every field plus the configured per-message, per-name, and
// reply-primer overheads.
//
// Count never fails. A tokenizer panic is treated as a soft error: the
// count is reported as 0 and a warning is logged, so one malformed
// message cannot take the send path down.
func (c *Counter) Count(messages []session.Message) (total int) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("token count failed, reporting zero", slog.Any("error", r))
			total = 0
		}
	}()

	for _, msg := range messages {
		total += c.overheads.PerMessage
		total += len(c.tokenizer.Encode(string(msg.Role)))
		total += len(c.tokenizer.Encode(msg.Content))
		if msg.Name != "" {
			total += len(c.tokenizer.Encode(msg.Name))
			total += c.overheads.PerName
		}
	}
	total += c.overheads.ReplyPrimer
	return total
}

// FitsInLimit returns true if the messages fit within the token limit.
func (c *Counter) FitsInLimit(messages []session.Message, limit int) bool {
	return c.Count(messages) <= limit
}
