package session

// Role identifies the message sender.
type Role string

// Standard message roles.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single conversation turn. Messages are immutable once
// created; ordering within a session is chronological.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`

	// Name optionally identifies the author of the message.
	// Some tokenizers bill named messages differently.
	Name string `json:"name,omitempty"`
}

// Session is an ordered conversation history. At most one system message
// is allowed and it always occupies index 0. All other messages are
// appended in arrival order and only ever removed from the front
// (excluding the system message).
//
// Session is not safe for concurrent use. Callers sending against the
// same session concurrently must serialize access themselves.
type Session struct {
	Name     string    `json:"name,omitempty"`
	Messages []Message `json:"messages"`

	changed bool
}

// New creates an empty session. If systemPrompt is non-empty, it becomes
// the leading system message.
func New(name, systemPrompt string) *Session {
	s := &Session{Name: name, changed: true}
	if systemPrompt != "" {
		s.Messages = append(s.Messages, Message{Role: RoleSystem, Content: systemPrompt})
	}
	return s
}

// AppendUser appends a user message.
func (s *Session) AppendUser(content string) {
	s.Messages = append(s.Messages, Message{Role: RoleUser, Content: content})
	s.changed = true
}

// AppendAssistant appends an assistant message.
func (s *Session) AppendAssistant(content string) {
	s.Messages = append(s.Messages, Message{Role: RoleAssistant, Content: content})
	s.changed = true
}

// Append appends an arbitrary message. System messages are rejected once
// the session has any content; use New with a system prompt instead.
func (s *Session) Append(msg Message) bool {
	if msg.Role == RoleSystem && len(s.Messages) > 0 {
		return false
	}
	s.Messages = append(s.Messages, msg)
	s.changed = true
	return true
}

// HasSystemPrompt reports whether the session has a leading system message.
func (s *Session) HasSystemPrompt() bool {
	return len(s.Messages) > 0 && s.Messages[0].Role == RoleSystem
}

// EvictOldest removes and returns the oldest non-system message. It
// returns false without mutating the session when no message can be
// removed: either the session is empty, or only the system message and
// at most one other message remain — the newest message is never evicted.
func (s *Session) EvictOldest() (Message, bool) {
	idx := 0
	if s.HasSystemPrompt() {
		idx = 1
	}
	// Keep at least the newest message.
	if len(s.Messages) <= idx+1 {
		return Message{}, false
	}
	removed := s.Messages[idx]
	s.Messages = append(s.Messages[:idx], s.Messages[idx+1:]...)
	s.changed = true
	return removed, true
}

// Len returns the number of messages, including any system message.
func (s *Session) Len() int {
	return len(s.Messages)
}

// Changed reports whether the session has been mutated since the last
// MarkSaved call.
func (s *Session) Changed() bool {
	return s.changed
}

// MarkSaved clears the dirty flag. Stores call this after a successful
// write.
func (s *Session) MarkSaved() {
	s.changed = false
}
