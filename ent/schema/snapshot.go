package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Snapshot stores the wallet and today's plan progress. Start-up restores
// the wallet from the latest row and replays only later reward events.
type Snapshot struct {
	ent.Schema
}

func (Snapshot) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Comment("Last event sequence folded into data"),
		field.Int64("created_at").
			DefaultFunc(nowMillis).
			Comment("Unix milliseconds"),
		field.JSON("data", map[string]any{}).
			Comment("Versioned learner state"),
	}
}

func (Snapshot) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("sequence"),
	}
}
