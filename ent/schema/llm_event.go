package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// LLMEvent records every LLM API call for usage reports.
type LLMEvent struct {
	ent.Schema
}

func (LLMEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (LLMEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("provider").
			Comment("anthropic, openai, openrouter or gemini"),
		field.String("model"),
		field.String("purpose").
			Default("").
			Comment("plan, variant or chat"),
		field.Int("input_tokens").
			Default(0),
		field.Int("output_tokens").
			Default(0),
		field.Int64("latency_ms").
			Default(0),
		field.Bool("success"),
		field.String("error_message").
			Default(""),
	}
}

func (LLMEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("provider"),
		index.Fields("purpose"),
	}
}
