package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProviderReplaysScript(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Text: "今天先复习错题吧。", Usage: newUsage(10, 5)},
		MockResponse{Content: json.RawMessage(`{"reply":"好"}`)},
	)
	ctx := context.Background()

	first, err := mock.Generate(ctx, Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "今天学什么"}}})
	require.NoError(t, err)
	assert.Equal(t, "今天先复习错题吧。", first.Text)
	assert.Equal(t, 15, first.Usage.TotalTokens)
	assert.Equal(t, StopEnd, first.StopReason)

	second, err := mock.Generate(ctx, Request{Schema: &Schema{Name: "reply"}})
	require.NoError(t, err)
	var out struct{ Reply string }
	require.NoError(t, second.Decode(&out))
	assert.Equal(t, "好", out.Reply)
	assert.Empty(t, second.Text)

	_, err = mock.Generate(ctx, Request{})
	var unavail *ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavail))

	mock.Script(MockResponse{Err: &ErrRateLimit{}})
	_, err = mock.Generate(ctx, Request{})
	var rl *ErrRateLimit
	assert.True(t, errors.As(err, &rl))

	assert.Equal(t, 4, mock.CallCount())
	assert.Equal(t, "sys", mock.Calls[0].System)
	assert.Equal(t, "mock", mock.ModelID())
}

func TestPurposeFrom(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))
	assert.Equal(t, "daily-plan", PurposeFrom(WithPurpose(ctx, "daily-plan")))
}

func TestFinish(t *testing.T) {
	schema := &Schema{Name: "test-finish", Definition: map[string]any{
		"type":     "object",
		"required": []string{"reply"},
	}}

	resp, err := finish(Request{}, reply{text: "你好", model: "m", stop: StopEnd})
	require.NoError(t, err)
	assert.Equal(t, "你好", resp.Text)

	_, err = finish(Request{}, reply{text: "  \n"})
	var inv *ErrInvalidResponse
	assert.True(t, errors.As(err, &inv), "blank text reply")

	resp, err = finish(Request{Schema: schema}, reply{text: "```json\n{\"reply\":\"ok\"}\n```"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"reply":"ok"}`, string(resp.Content))

	_, err = finish(Request{Schema: schema}, reply{text: `{"reply":`, stop: StopMaxTokens})
	var maxTok *ErrMaxTokensExceeded
	assert.True(t, errors.As(err, &maxTok))

	_, err = finish(Request{Schema: schema}, reply{text: `{"other":1}`})
	assert.True(t, errors.As(err, &inv), "schema mismatch")
}

func TestDecodeEmpty(t *testing.T) {
	var v map[string]any
	err := (&Response{}).Decode(&v)
	var inv *ErrInvalidResponse
	assert.True(t, errors.As(err, &inv))
}

func TestOpenRouterProvider(t *testing.T) {
	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or", Model: "anthropic/claude-haiku-4.5"})
	require.NoError(t, err)
	assert.Equal(t, "anthropic/claude-haiku-4.5", p.ModelID(), "OpenRouter IDs pass through")
	assert.Equal(t, "openrouter", p.name)

	_, err = NewOpenRouterProvider(OpenRouterConfig{Model: "x"})
	assert.Error(t, err)
}
