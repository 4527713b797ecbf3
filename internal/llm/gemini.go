package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

var geminiModels = map[string]string{
	"gemini-flash": "gemini-2.5-flash",
	"gemini-lite":  "gemini-2.5-flash-lite",
}

// GeminiProvider talks to the Gemini API through the genai SDK.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider builds a provider. cc is optional; tests use it to
// point the client at a local server.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig, cc ...*genai.ClientConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	conf := &genai.ClientConfig{}
	if len(cc) > 0 && cc[0] != nil {
		conf = cc[0]
	}
	conf.APIKey = cfg.APIKey
	conf.Backend = genai.BackendGeminiAPI

	client, err := genai.NewClient(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	return &GeminiProvider{client: client, model: resolveModel(cfg.Model, geminiModels)}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	conf := &genai.GenerateContentConfig{MaxOutputTokens: int32(req.MaxTokens)}
	if req.Temperature > 0 {
		conf.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.System != "" {
		conf.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Schema != nil {
		conf.ResponseMIMEType = "application/json"
		conf.ResponseSchema = geminiSchema(req.Schema.Definition)
	}

	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := genai.Role(genai.RoleUser)
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	res, err := p.client.Models.GenerateContent(ctx, p.model, contents, conf)
	if err != nil {
		return nil, geminiError(err)
	}

	stop := StopEnd
	if len(res.Candidates) > 0 && res.Candidates[0].FinishReason == genai.FinishReasonMaxTokens {
		stop = StopMaxTokens
	}
	var usage Usage
	if u := res.UsageMetadata; u != nil {
		usage = newUsage(int(u.PromptTokenCount), int(u.CandidatesTokenCount))
	}
	model := res.ModelVersion
	if model == "" {
		model = p.model
	}
	return finish(req, reply{text: res.Text(), model: model, stop: stop, usage: usage})
}

func (p *GeminiProvider) ModelID() string {
	return p.model
}

// geminiSchema converts the JSON Schema subset used by Lumi's structured
// prompts (types, properties, required, enum, items, bounds) into the
// SDK's schema type.
func geminiSchema(def map[string]any) *genai.Schema {
	s := &genai.Schema{}
	if t, ok := def["type"].(string); ok {
		s.Type = geminiTypes[t]
	}
	if d, ok := def["description"].(string); ok {
		s.Description = d
	}
	if props, ok := def["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, v := range props {
			if sub, ok := v.(map[string]any); ok {
				s.Properties[name] = geminiSchema(sub)
			}
		}
	}
	s.Required = stringList(def["required"])
	s.Enum = stringList(def["enum"])
	if items, ok := def["items"].(map[string]any); ok {
		s.Items = geminiSchema(items)
	}
	if n, ok := number(def["minItems"]); ok {
		s.MinItems = genai.Ptr(int64(n))
	}
	if n, ok := number(def["maxItems"]); ok {
		s.MaxItems = genai.Ptr(int64(n))
	}
	return s
}

var geminiTypes = map[string]genai.Type{
	"string":  genai.TypeString,
	"number":  genai.TypeNumber,
	"integer": genai.TypeInteger,
	"boolean": genai.TypeBoolean,
	"array":   genai.TypeArray,
	"object":  genai.TypeObject,
}

// stringList accepts both []any (decoded JSON) and []string (Go literals).
func stringList(v any) []string {
	switch vs := v.(type) {
	case []string:
		return append([]string(nil), vs...)
	case []any:
		var out []string
		for _, e := range vs {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func geminiError(err error) error {
	if ctxErr := contextError(err); ctxErr != nil {
		return ctxErr
	}
	wrapped := fmt.Errorf("gemini: %w", err)
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.Code, 0, wrapped)
	}
	return &ErrProviderUnavailable{Err: wrapped}
}
