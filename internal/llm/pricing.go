package llm

import "strings"

// price is USD per million tokens.
type price struct {
	in, out float64
}

// prices covers the defaults and aliases Lumi ships with. Dated snapshot
// IDs ("claude-haiku-4-5-20251001") resolve through their prefix.
var prices = map[string]price{
	"claude-haiku-4-5":      {1, 5},
	"claude-sonnet-4-5":     {3, 15},
	"gpt-4o-mini":           {0.15, 0.6},
	"gpt-4o":                {2.5, 10},
	"gpt-4.1-mini":          {0.4, 1.6},
	"gpt-5-mini":            {0.25, 2},
	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},
}

// EstimateCost prices a request's tokens for model. ok is false for models
// without a known price, including OpenRouter IDs and the mock.
func EstimateCost(model string, inputTokens, outputTokens int) (usd float64, ok bool) {
	p, ok := lookupPrice(model)
	if !ok {
		return 0, false
	}
	return (float64(inputTokens)*p.in + float64(outputTokens)*p.out) / 1e6, true
}

func lookupPrice(model string) (price, bool) {
	if p, ok := prices[model]; ok {
		return p, true
	}
	best, found := "", false
	for id := range prices {
		if strings.HasPrefix(model, id+"-") && len(id) > len(best) {
			best, found = id, true
		}
	}
	if !found {
		return price{}, false
	}
	return prices[best], true
}
