package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MockCompletion is one canned result for the MockProvider.
type MockCompletion struct {
	Content json.RawMessage
	Err     error
}

// MockProvider returns canned completions in FIFO order and records
// every request, for tests.
type MockProvider struct {
	mu          sync.Mutex
	completions []MockCompletion
	Calls       []Request
}

var _ Provider = (*MockProvider)(nil)

// NewMockProvider creates a MockProvider with the given queue.
func NewMockProvider(completions ...MockCompletion) *MockProvider {
	return &MockProvider{completions: completions}
}

// Complete pops the next canned completion, or fails when the queue is
// empty.
func (m *MockProvider) Complete(_ context.Context, req Request) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.completions) == 0 {
		return nil, fmt.Errorf("mock provider: no completions queued")
	}
	next := m.completions[0]
	m.completions = m.completions[1:]
	if next.Err != nil {
		return nil, next.Err
	}
	return next.Content, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// CallCount returns how many Complete calls were made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
