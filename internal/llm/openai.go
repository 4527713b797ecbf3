package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

var openaiModels = map[string]string{
	"gpt-mini": "gpt-4o-mini",
	"gpt":      "gpt-4o",
}

// OpenAIProvider talks to the Chat Completions API or any endpoint that
// speaks it.
type OpenAIProvider struct {
	name   string
	client *openai.Client
	model  string
}

// NewOpenAIProvider builds a provider for api.openai.com, or for
// cfg.BaseURL when set.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	return newChatCompletions("openai", cfg.APIKey, cfg.BaseURL, resolveModel(cfg.Model, openaiModels))
}

func newChatCompletions(name, apiKey, baseURL, model string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s: API key is required", name)
	}
	c := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		c.BaseURL = baseURL
	}
	return &OpenAIProvider{name: name, client: openai.NewClientWithConfig(c), model: model}, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	chat := openai.ChatCompletionRequest{
		Model:               p.model,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
		Messages:            make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1),
	}
	if req.System != "" {
		chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	if req.Schema != nil {
		def, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("%s: marshal schema %q: %w", p.name, req.Schema.Name, err)
		}
		chat.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:        req.Schema.Name,
				Description: req.Schema.Description,
				Schema:      json.RawMessage(def),
				Strict:      true,
			},
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, chat)
	if err != nil {
		return nil, p.classify(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("%s: %w", p.name, errNoContent)}
	}

	choice := resp.Choices[0]
	stop := StopEnd
	if choice.FinishReason == openai.FinishReasonLength {
		stop = StopMaxTokens
	}
	model := resp.Model
	if model == "" {
		model = p.model
	}
	return finish(req, reply{
		text:  choice.Message.Content,
		model: model,
		stop:  stop,
		usage: newUsage(resp.Usage.PromptTokens, resp.Usage.CompletionTokens),
	})
}

func (p *OpenAIProvider) ModelID() string {
	return p.model
}

func (p *OpenAIProvider) classify(err error) error {
	if ctxErr := contextError(err); ctxErr != nil {
		return ctxErr
	}
	wrapped := fmt.Errorf("%s: %w", p.name, err)
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.HTTPStatusCode, 0, wrapped)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return classifyStatus(reqErr.HTTPStatusCode, 0, wrapped)
	}
	return &ErrProviderUnavailable{Err: wrapped}
}
