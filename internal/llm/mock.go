package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

var errMockExhausted = errors.New("mock: no scripted replies left")

// MockResponse is one scripted turn. Content answers structured requests,
// Text answers free-text ones; a scripted Err is returned as is.
type MockResponse struct {
	Text    string
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays scripted turns in order and keeps every request it
// saw. It backs `--llm mock` and the tests of everything that generates.
type MockProvider struct {
	mu      sync.Mutex
	replies []MockResponse
	Calls   []Request
}

func NewMockProvider(replies ...MockResponse) *MockProvider {
	return &MockProvider{replies: replies}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if len(m.replies) == 0 {
		return nil, &ErrProviderUnavailable{Err: errMockExhausted}
	}
	next := m.replies[0]
	m.replies = m.replies[1:]
	if next.Err != nil {
		return nil, next.Err
	}

	text := next.Text
	if text == "" && req.Schema == nil {
		text = string(next.Content)
	}
	return &Response{
		Text:       text,
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      "mock",
		StopReason: StopEnd,
	}, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// Script queues more replies.
func (m *MockProvider) Script(replies ...MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, replies...)
}

// CallCount returns how many requests were made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
