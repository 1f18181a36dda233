package window

import (
	"log/slog"

	"github.com/dagnazty/chatgpt-gui/session"
	"github.com/dagnazty/chatgpt-gui/tokens"
)

// Manager keeps a growing conversation inside a fixed token budget by
// evicting the oldest non-system messages.
type Manager struct {
	counter *tokens.Counter
}

// NewManager creates a manager using the given counter. A nil counter
// falls back to the estimating tokenizer with default overheads.
func NewManager(counter *tokens.Counter) *Manager {
	if counter == nil {
		counter = tokens.NewCounter(nil, tokens.OverheadsForModel("default"))
	}
	return &Manager{counter: counter}
}

// Enforce evicts messages from the session until
//
//	count(messages) + budget.MaxResponseTokens <= budget.MaxContextTokens
//
// holds, or nothing more can be removed. Eviction always takes the
// oldest non-system message; the system message and the newest message
// are never removed. Enforce mutates the session in place and returns
// the number of evicted messages.
//
// When the budget cannot be met, stillOver is true and a warning is
// logged; the caller proceeds over budget rather than failing the send.
func (m *Manager) Enforce(sess *session.Session, budget Budget) (evicted int, stillOver bool) {
	limit := budget.HistoryLimit()

	for m.counter.Count(sess.Messages) > limit {
		removed, ok := sess.EvictOldest()
		if !ok {
			slog.Warn("token budget cannot be reduced further, proceeding over budget",
				slog.Int("messages", sess.Len()),
				slog.Int("tokens", m.counter.Count(sess.Messages)),
				slog.Int("limit", limit))
			return evicted, true
		}
		evicted++
		slog.Debug("evicted message to stay within token budget",
			slog.String("role", string(removed.Role)),
			slog.Int("remaining", sess.Len()))
	}
	return evicted, false
}

// WouldFit reports whether the session already fits the budget without
// any eviction.
func (m *Manager) WouldFit(sess *session.Session, budget Budget) bool {
	return m.counter.Count(sess.Messages) <= budget.HistoryLimit()
}
