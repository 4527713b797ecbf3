// Package llm talks to the language models behind Lumi's generated plans,
// mistake variants and companion chat. Every vendor sits behind Provider;
// callers never see SDK types.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one model turn.
type Provider interface {
	// Generate sends req and returns the model's turn. With req.Schema set
	// the reply is validated JSON in Response.Content; without it the reply
	// is plain text in Response.Text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the configured model, after alias resolution.
	ModelID() string
}

// Request is a single generation call.
type Request struct {
	System   string
	Messages []Message

	// Schema asks for structured output. Nil means free text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the vendor default.
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema document for structured output. Name doubles
// as the compiled-schema cache key, so it must be unique per Definition.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// StopReason is the vendor-neutral reason a turn ended.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

type Response struct {
	Text    string
	Content json.RawMessage

	Usage      Usage
	Model      string
	StopReason StopReason
}

// Decode unmarshals structured Content into v.
func (r *Response) Decode(v any) error {
	if len(r.Content) == 0 {
		return &ErrInvalidResponse{Content: r.Content, Err: errNoContent}
	}
	if err := json.Unmarshal(r.Content, v); err != nil {
		return &ErrInvalidResponse{Content: r.Content, Err: err}
	}
	return nil
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

func newUsage(in, out int) Usage {
	return Usage{InputTokens: in, OutputTokens: out, TotalTokens: in + out}
}
