package llm

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// NewOpenRouterProvider builds a Chat Completions provider aimed at
// OpenRouter. Models use OpenRouter's vendor/model IDs as given.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenAIProvider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = openRouterBaseURL
	}
	return newChatCompletions("openrouter", cfg.APIKey, baseURL, cfg.Model)
}
