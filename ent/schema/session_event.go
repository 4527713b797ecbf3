package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records a finished quiz, daily conquer or assessment stage.
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID of the run"),
		field.Int64("started_at").
			Default(0).
			Comment("Unix milliseconds when the learner opted in; zero if unknown"),
		field.Enum("mode").
			Values("quiz", "conquer", "assessment"),
		field.String("subject").
			Default("").
			Comment("Empty for mixed-subject runs"),
		field.Int("correct"),
		field.Int("total"),
		field.Int("max_combo"),
		field.Int("xp_earned"),
		field.JSON("mastered_ids", []string{}).
			Comment("Mistake items mastered by a daily conquer"),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("mode"),
	}
}
