package window

import (
	"strings"
	"testing"

	"github.com/dagnazty/chatgpt-gui/session"
	"github.com/dagnazty/chatgpt-gui/tokens"
)

// starTokenizer bills one token per '*' rune, so tests can assign exact
// costs to message contents while roles cost nothing.
type starTokenizer struct{}

func (starTokenizer) Encode(text string) []int {
	return make([]int, strings.Count(text, "*"))
}

func starCounter() *tokens.Counter {
	return tokens.NewCounter(starTokenizer{}, tokens.Overheads{})
}

func cost(n int) string { return strings.Repeat("*", n) }

func TestBudget_Validate(t *testing.T) {
	tests := []struct {
		name    string
		budget  Budget
		wantErr bool
	}{
		{
			name:    "valid",
			budget:  Budget{MaxContextTokens: 100, MaxResponseTokens: 20},
			wantErr: false,
		},
		{
			name:    "response equals context",
			budget:  Budget{MaxContextTokens: 100, MaxResponseTokens: 100},
			wantErr: true,
		},
		{
			name:    "response exceeds context",
			budget:  Budget{MaxContextTokens: 100, MaxResponseTokens: 200},
			wantErr: true,
		},
		{
			name:    "zero response",
			budget:  Budget{MaxContextTokens: 100, MaxResponseTokens: 0},
			wantErr: true,
		},
		{
			name:    "zero context",
			budget:  Budget{MaxContextTokens: 0, MaxResponseTokens: 20},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.budget.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestManager_EnforceEvictsToBudget(t *testing.T) {
	// 100-token window with 20 reserved for the reply leaves 80 for
	// history: a 5-token system message plus ten 15-token messages must
	// shrink to system + 5 messages (5 + 75 = 80).
	mgr := NewManager(starCounter())
	budget := Budget{MaxContextTokens: 100, MaxResponseTokens: 20}

	sess := session.New("t", cost(5))
	for i := 0; i < 10; i++ {
		sess.AppendUser(cost(15))
	}

	evicted, stillOver := mgr.Enforce(sess, budget)

	if evicted != 5 {
		t.Errorf("evicted = %d, expected 5", evicted)
	}
	if stillOver {
		t.Error("stillOver = true, expected budget to be met")
	}
	if sess.Len() != 6 {
		t.Errorf("Len() = %d, expected 6 (system + 5 messages)", sess.Len())
	}
	if !sess.HasSystemPrompt() {
		t.Error("system message was evicted")
	}
}

func TestManager_EnforceIdempotent(t *testing.T) {
	mgr := NewManager(starCounter())
	budget := Budget{MaxContextTokens: 100, MaxResponseTokens: 20}

	sess := session.New("t", cost(5))
	for i := 0; i < 10; i++ {
		sess.AppendUser(cost(15))
	}

	mgr.Enforce(sess, budget)
	evicted, stillOver := mgr.Enforce(sess, budget)

	if evicted != 0 || stillOver {
		t.Errorf("second Enforce = (%d, %v), expected (0, false)", evicted, stillOver)
	}
}

func TestManager_EnforceNeverRemovesNewest(t *testing.T) {
	// A single oversized message cannot be evicted; the call proceeds
	// over budget with a warning instead.
	mgr := NewManager(starCounter())
	budget := Budget{MaxContextTokens: 100, MaxResponseTokens: 20}

	sess := session.New("t", "")
	sess.AppendUser(cost(500))

	evicted, stillOver := mgr.Enforce(sess, budget)

	if evicted != 0 {
		t.Errorf("evicted = %d, expected 0", evicted)
	}
	if !stillOver {
		t.Error("stillOver = false, expected true for an unenforceable budget")
	}
	if sess.Len() != 1 {
		t.Errorf("Len() = %d, the newest message must survive", sess.Len())
	}
}

func TestManager_EnforceWithSystemOnlyAndNewest(t *testing.T) {
	mgr := NewManager(starCounter())
	budget := Budget{MaxContextTokens: 100, MaxResponseTokens: 20}

	sess := session.New("t", cost(60))
	sess.AppendUser(cost(60))

	evicted, stillOver := mgr.Enforce(sess, budget)

	if evicted != 0 {
		t.Errorf("evicted = %d, expected 0", evicted)
	}
	if !stillOver {
		t.Error("stillOver = false, expected true")
	}
	if !sess.HasSystemPrompt() || sess.Len() != 2 {
		t.Error("neither the system message nor the newest message may be evicted")
	}
}

func TestManager_EnforceEvictsOldestFirst(t *testing.T) {
	mgr := NewManager(starCounter())
	budget := Budget{MaxContextTokens: 50, MaxResponseTokens: 10}

	sess := session.New("t", "")
	sess.AppendUser(cost(30) + "a")
	sess.AppendUser(cost(30) + "b")

	// 60 > 40: the older "a" message goes first.
	mgr.Enforce(sess, budget)

	if sess.Len() != 1 {
		t.Fatalf("Len() = %d, expected 1", sess.Len())
	}
	if !strings.HasSuffix(sess.Messages[0].Content, "b") {
		t.Error("wrong message evicted: the oldest must go first")
	}
}

func TestManager_WouldFit(t *testing.T) {
	mgr := NewManager(starCounter())
	budget := Budget{MaxContextTokens: 100, MaxResponseTokens: 20}

	sess := session.New("t", "")
	sess.AppendUser(cost(80))
	if !mgr.WouldFit(sess, budget) {
		t.Error("WouldFit = false at exactly the limit, expected true")
	}
	sess.AppendUser(cost(1))
	if mgr.WouldFit(sess, budget) {
		t.Error("WouldFit = true over the limit, expected false")
	}
}
