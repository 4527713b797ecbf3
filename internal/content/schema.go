package content

import "github.com/abhisek/lumi/internal/llm"

// PlanSchema is the structured output for a generated daily plan.
var PlanSchema = &llm.Schema{
	Name:        "daily-plan",
	Description: "Today's study plan for a middle-school learner",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short upbeat plan title in Chinese",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "One sentence on why the plan looks like this",
			},
			"tasks": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 5,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{"type": "string"},
						"subject": map[string]any{
							"type": "string",
							"enum": []any{"math", "chinese", "english"},
						},
						"duration_minutes": map[string]any{
							"type":    "integer",
							"minimum": 5,
							"maximum": 60,
						},
						"rationale": map[string]any{
							"type":        "string",
							"description": "Why this task was chosen, citing the learner's recent mistakes",
						},
					},
					"required":             []any{"title", "subject", "duration_minutes", "rationale"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "description", "tasks"},
		"additionalProperties": false,
	},
}

// VariantSchema is the structured output for a mistake variant question.
var VariantSchema = &llm.Schema{
	Name:        "mistake-variant",
	Description: "A single-choice practice question testing the same point as a past mistake",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"prompt": map[string]any{
				"type":        "string",
				"description": "The new question, different numbers or wording from the original",
			},
			"options": map[string]any{
				"type":     "array",
				"minItems": 4,
				"maxItems": 4,
				"items":    map[string]any{"type": "string"},
			},
			"correct": map[string]any{
				"type":        "string",
				"description": "The exact text of the correct option",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Worked solution naming the shared knowledge point",
			},
		},
		"required":             []any{"prompt", "options", "correct", "explanation"},
		"additionalProperties": false,
	},
}
