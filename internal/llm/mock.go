package llm

import (
	"context"
	"sync"
)

// Mock is a Completer test double. Responses are returned in order; the last
// one repeats once the list is exhausted.
type Mock struct {
	Responses []string
	Err       error

	mu    sync.Mutex
	calls []MockCall
}

type MockCall struct {
	SystemPrompt string
	UserText     string
}

func NewMock(responses ...string) *Mock {
	return &Mock{Responses: responses}
}

func (m *Mock) Complete(_ context.Context, systemPrompt, userText string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.calls)
	m.calls = append(m.calls, MockCall{SystemPrompt: systemPrompt, UserText: userText})
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "", nil
	}
	if n >= len(m.Responses) {
		n = len(m.Responses) - 1
	}
	return m.Responses[n], nil
}

func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall(nil), m.calls...)
}
