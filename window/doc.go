// Package window enforces a per-request token budget over a growing
// conversation.
//
// A Budget splits the model's context window between history and the
// reserved response. Manager.Enforce evicts the oldest non-system
// messages until the history plus reservation fits:
//
//	budget := window.Budget{MaxContextTokens: 128000, MaxResponseTokens: 32768}
//	mgr := window.NewManager(counter)
//	evicted, stillOver := mgr.Enforce(sess, budget)
//
// The leading system message and the most recently appended message are
// never evicted. If the budget cannot be met with what may be removed,
// Enforce reports stillOver=true and the call proceeds over budget with
// a logged warning instead of failing.
package window
