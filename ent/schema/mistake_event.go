package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// MistakeEvent records a mistake item status transition. The latest row per
// item is replayed onto the vault at start-up.
type MistakeEvent struct {
	ent.Schema
}

func (MistakeEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (MistakeEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("item_id").
			NotEmpty(),
		field.Enum("from_status").
			Values("new", "reviewing", "mastered"),
		field.Enum("to_status").
			Values("new", "reviewing", "mastered"),
		field.String("cause").
			Comment("confirm, conquer or review"),
	}
}

func (MistakeEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("item_id", "sequence"),
	}
}
