package provider

import (
	"context"
	"slices"
	"sync"
)

// RequestFunc answers an eth_requestAccounts call on a Mock.
type RequestFunc func(ctx context.Context) ([]string, error)

// Mock is an in-memory wallet used by tests and by the server when no endpoint is configured.
type Mock struct {
	name string

	mu          sync.Mutex
	present     bool
	request     RequestFunc
	calls       int
	handlers    map[uint64]AccountsChangedHandler
	nextHandler uint64
}

// NewMock returns a present wallet that authorizes no accounts until told otherwise.
func NewMock(name string) *Mock {
	return &Mock{
		name:     name,
		present:  true,
		handlers: make(map[uint64]AccountsChangedHandler),
		request: func(context.Context) ([]string, error) {
			return []string{}, nil
		},
	}
}

func (m *Mock) Name() string {
	return m.name
}

func (m *Mock) Present() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.present
}

func (m *Mock) SetPresent(present bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.present = present
}

// Respond makes every following request resolve with accounts and err.
func (m *Mock) Respond(accounts []string, err error) {
	m.OnRequest(func(context.Context) ([]string, error) {
		return slices.Clone(accounts), err
	})
}

// Reject makes every following request fail with a coded wallet error.
func (m *Mock) Reject(code int, message string) {
	m.Respond(nil, NewError(code, message))
}

func (m *Mock) OnRequest(fn RequestFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.request = fn
}

func (m *Mock) RequestAccounts(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	m.calls++
	fn := m.request
	m.mu.Unlock()

	return fn(ctx)
}

// Calls returns how often RequestAccounts was invoked.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *Mock) SubscribeAccountsChanged(handler AccountsChangedHandler) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextHandler
	m.nextHandler++
	m.handlers[id] = handler

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.handlers, id)
	}
}

// Subscribers returns the number of registered account change handlers.
func (m *Mock) Subscribers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.handlers)
}

// EmitAccountsChanged delivers accounts to every registered handler synchronously.
func (m *Mock) EmitAccountsChanged(accounts []string) {
	m.mu.Lock()
	handlers := make([]AccountsChangedHandler, 0, len(m.handlers))
	for _, h := range m.handlers {
		handlers = append(handlers, h)
	}
	m.mu.Unlock()

	for _, h := range handlers {
		h(slices.Clone(accounts))
	}
}
