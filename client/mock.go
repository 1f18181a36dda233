package client

import (
	"context"
	"fmt"

	"github.com/dagnazty/chatgpt-gui/session"
)

// MockCaller is a remote caller that answers locally. It is registered
// under the name "mock" so the application can be exercised end to end
// without credentials or network access.
type MockCaller struct {
	model string
}

func init() {
	RegisterCaller("mock", func(cfg CallerConfig) (RemoteCaller, error) {
		return &MockCaller{model: cfg.Model}, nil
	})
}

// Send echoes the latest user message back.
func (m *MockCaller) Send(ctx context.Context, messages []session.Message, maxResponseTokens int) (string, error) {
	if len(messages) == 0 {
		return "", NewError("send", ErrMalformedRequest, false)
	}
	last := messages[len(messages)-1]
	return fmt.Sprintf("[%s mock] you said: %s", m.model, last.Content), nil
}
