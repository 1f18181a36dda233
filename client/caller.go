package client

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dagnazty/chatgpt-gui/session"
)

// RemoteCaller sends a prepared conversation to the remote
// text-generation service and returns the assistant's reply. It is owned
// by the surrounding application and injected into the Client.
//
// Implementations must return the sentinel errors (or an *Error wrapper)
// from this package so failures classify cleanly.
type RemoteCaller interface {
	// Send submits the messages and returns the reply text.
	Send(ctx context.Context, messages []session.Message, maxResponseTokens int) (string, error)
}

// CallerFunc adapts a plain function to the RemoteCaller interface.
type CallerFunc func(ctx context.Context, messages []session.Message, maxResponseTokens int) (string, error)

// Send implements RemoteCaller.
func (f CallerFunc) Send(ctx context.Context, messages []session.Message, maxResponseTokens int) (string, error) {
	return f(ctx, messages, maxResponseTokens)
}

// CallerConfig carries the settings a caller factory needs. Credential
// is opaque to this package; it is passed through untouched.
type CallerConfig struct {
	Model      string
	Credential string
	BaseURL    string
	Options    map[string]any
}

// Factory creates a RemoteCaller from configuration. Each backend
// registers its own factory.
type Factory func(cfg CallerConfig) (RemoteCaller, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// RegisterCaller adds a caller factory to the registry. Backends call
// this in their init() function. Panics if the name is already taken.
func RegisterCaller(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("remote caller %q already registered", name))
	}
	registry[name] = factory
}

// NewCaller creates a RemoteCaller using the named factory. Returns
// ErrUnknownCaller if no factory with that name is registered.
func NewCaller(name string, cfg CallerConfig) (RemoteCaller, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCaller, name)
	}
	return factory(cfg)
}

// AvailableCallers returns the registered caller names, sorted.
func AvailableCallers() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsCallerRegistered checks if a caller factory is registered.
func IsCallerRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()

	_, ok := registry[name]
	return ok
}

// UnregisterCaller removes a factory from the registry. Primarily
// useful for tests.
func UnregisterCaller(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()

	delete(registry, name)
}
