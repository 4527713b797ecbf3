package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anthropicServer(t *testing.T, status int, body any, seen *map[string]any) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, seen)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)

	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", Model: "claude-haiku"}, option.WithBaseURL(srv.URL))
	require.NoError(t, err)
	return p
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"model":       "claude-haiku-4-5",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 40, "output_tokens": 12},
	}
}

func TestAnthropicStructuredReply(t *testing.T) {
	var seen map[string]any
	p := anthropicServer(t, http.StatusOK, anthropicMessage(`{"reply":"先移项，再合并同类项。"}`, "end_turn"), &seen)

	resp, err := p.Generate(context.Background(), Request{
		System:    "You are Lumi.",
		Messages:  []Message{{Role: RoleUser, Content: "怎么解 2x+3=7"}},
		Schema:    &Schema{Name: "anthropic-reply", Definition: map[string]any{"type": "object", "required": []string{"reply"}}},
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"reply":"先移项，再合并同类项。"}`, string(resp.Content))
	assert.Equal(t, 52, resp.Usage.TotalTokens)
	assert.Equal(t, StopEnd, resp.StopReason)

	assert.Equal(t, "claude-haiku-4-5", seen["model"])
	assert.Contains(t, seen, "output_config")
	assert.Contains(t, seen, "system")
}

func TestAnthropicTruncatedStructuredReply(t *testing.T) {
	p := anthropicServer(t, http.StatusOK, anthropicMessage(`{"reply":"先`, "max_tokens"), nil)
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "hi"}},
		Schema:    &Schema{Name: "anthropic-reply", Definition: map[string]any{"type": "object"}},
		MaxTokens: 8,
	})
	var maxTok *ErrMaxTokensExceeded
	assert.True(t, errors.As(err, &maxTok), "got %T", err)
}

func TestAnthropicErrors(t *testing.T) {
	apiErr := func(kind string) map[string]any {
		return map[string]any{"type": "error", "error": map[string]any{"type": kind, "message": kind}}
	}
	tests := []struct {
		status int
		check  func(error) bool
	}{
		{http.StatusTooManyRequests, func(err error) bool { var e *ErrRateLimit; return errors.As(err, &e) }},
		{http.StatusInternalServerError, func(err error) bool { var e *ErrProviderUnavailable; return errors.As(err, &e) }},
		{http.StatusUnauthorized, func(err error) bool { var e *ErrRequest; return errors.As(err, &e) && e.Status == 401 }},
	}
	for _, tt := range tests {
		p := anthropicServer(t, tt.status, apiErr("x"), nil)
		_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}, MaxTokens: 8})
		assert.True(t, tt.check(err), "status %d: got %T (%v)", tt.status, err, err)
	}
}

func TestAnthropicRequiresKey(t *testing.T) {
	_, err := NewAnthropicProvider(AnthropicConfig{Model: "claude-haiku"})
	assert.Error(t, err)
	assert.Equal(t, "claude-sonnet-4-5", resolveModel("claude-sonnet", anthropicModels))
}
