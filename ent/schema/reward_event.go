package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// RewardEvent records XP and coin movements.
type RewardEvent struct {
	ent.Schema
}

func (RewardEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (RewardEvent) Fields() []ent.Field {
	return []ent.Field{
		field.Enum("kind").
			Values("xp", "coins", "purchase"),
		field.Int("amount").
			Comment("Signed; purchases are negative coin amounts"),
		field.String("item_id").
			Default("").
			Comment("Store item for purchases"),
		field.String("reason").
			Default(""),
	}
}
