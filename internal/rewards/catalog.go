// Package rewards tracks the learner's coins and experience, the coin
// store, achievements and the class leaderboard.
package rewards

import "slices"

// Category groups store items.
type Category string

const (
	CategoryVirtual Category = "virtual" // Companion outfits and power-ups
	CategoryTicket  Category = "ticket"  // Real-world class rewards
)

// DisplayName returns the section heading for the category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryVirtual:
		return "Lumi 装扮 & 道具"
	case CategoryTicket:
		return "班级许愿池"
	default:
		return string(c)
	}
}

// Item is something that can be bought with coins.
type Item struct {
	ID          string   `yaml:"id" json:"id"`
	Icon        string   `yaml:"icon" json:"icon"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Price       int      `yaml:"price" json:"price"`
	Category    Category `yaml:"category" json:"category"`
	MinLevel    int      `yaml:"min_level" json:"min_level,omitempty"`
	Rare        bool     `yaml:"rare" json:"rare,omitempty"`
	Consumable  bool     `yaml:"consumable" json:"consumable,omitempty"`
}

// Catalog is the store's item list in display order.
type Catalog []Item

// Find returns the item with id.
func (c Catalog) Find(id string) (Item, bool) {
	i := slices.IndexFunc(c, func(it Item) bool { return it.ID == id })
	if i < 0 {
		return Item{}, false
	}
	return c[i], true
}

// ByCategory returns the items of cat in display order.
func (c Catalog) ByCategory(cat Category) []Item {
	var out []Item
	for _, it := range c {
		if it.Category == cat {
			out = append(out, it)
		}
	}
	return out
}
