package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lumi/internal/store"
)

// recordingRepo captures AppendLLMRequest calls; other methods are no-ops.
type recordingRepo struct {
	store.EventRepo
	events []store.LLMRequestEventData
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return nil
}

func TestLoggingProviderRecordsEvents(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`"hi"`), Usage: Usage{InputTokens: 12, OutputTokens: 3}},
		MockResponse{Err: errors.New("boom")},
	)
	repo := &recordingRepo{}
	p := WithLogging(mock, "mock", repo, nil)

	ctx := WithPurpose(context.Background(), "companion-chat")
	_, err := p.Generate(ctx, Request{Messages: []Message{{Role: RoleUser, Content: "你好"}}})
	require.NoError(t, err)
	_, err = p.Generate(ctx, Request{})
	require.Error(t, err)

	require.Len(t, repo.events, 2)
	ok := repo.events[0]
	assert.Equal(t, "mock", ok.Provider)
	assert.Equal(t, "companion-chat", ok.Purpose)
	assert.Equal(t, 12, ok.InputTokens)
	assert.True(t, ok.Success)

	failed := repo.events[1]
	assert.False(t, failed.Success)
	assert.Equal(t, "boom", failed.ErrorMessage)
}

func TestLoggingProviderNilRepo(t *testing.T) {
	p := WithLogging(NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)}), "mock", nil, nil)
	_, err := p.Generate(context.Background(), Request{})
	assert.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())
}

func TestSerializeRequest(t *testing.T) {
	got := serializeRequest(Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "q"}},
		Schema:   &Schema{Name: "quiz-bank", Definition: map[string]any{"type": "object"}},
	})
	assert.Contains(t, got, "[system]\nsys")
	assert.Contains(t, got, "[user]\nq")
	assert.Contains(t, got, `[schema: quiz-bank]`)
}

func TestNewProviderDisabled(t *testing.T) {
	_, err := NewProvider(context.Background(), DefaultConfig(), nil, nil)
	assert.ErrorIs(t, err, ErrDisabled)

	cfg := DefaultConfig()
	cfg.Provider = "mock"
	p, err := NewProvider(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())
}
