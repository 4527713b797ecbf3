// Package quiz defines practice items and the rules for checking answers.
package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// Kind is the answer format of an item.
type Kind string

const (
	SingleChoice Kind = "single"
	MultiChoice  Kind = "multi"
	FreeText     Kind = "text"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case SingleChoice, MultiChoice, FreeText:
		return true
	}
	return false
}

// IsChoice reports whether the kind presents an option list.
func (k Kind) IsChoice() bool {
	return k == SingleChoice || k == MultiChoice
}

// Answer holds a learner or reference answer. Single-choice and free-text
// answers carry one value; multi-choice answers carry the selected set.
type Answer []string

// Single returns a one-value answer.
func Single(v string) Answer { return Answer{v} }

// Multi returns a set answer.
func Multi(vs ...string) Answer { return Answer(slices.Clone(vs)) }

// Empty reports whether nothing was answered.
func (a Answer) Empty() bool { return len(a) == 0 }

// Contains reports whether v is part of the answer.
func (a Answer) Contains(v string) bool { return slices.Contains(a, v) }

// Toggle adds v when absent and removes it when present.
func (a Answer) Toggle(v string) Answer {
	if i := slices.Index(a, v); i >= 0 {
		return slices.Delete(slices.Clone(a), i, i+1)
	}
	return append(slices.Clone(a), v)
}

// String renders the answer for display.
func (a Answer) String() string {
	switch len(a) {
	case 0:
		return ""
	case 1:
		return a[0]
	}
	out := a[0]
	for _, v := range a[1:] {
		out += ", " + v
	}
	return out
}

// UnmarshalYAML accepts either a scalar or a sequence.
func (a *Answer) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*a = Answer{value.Value}
		return nil
	case yaml.SequenceNode:
		var vs []string
		if err := value.Decode(&vs); err != nil {
			return err
		}
		*a = Answer(vs)
		return nil
	}
	return fmt.Errorf("answer: unsupported yaml node at line %d", value.Line)
}

// UnmarshalJSON accepts either a string or an array of strings.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Answer{s}
		return nil
	}
	var vs []string
	if err := json.Unmarshal(data, &vs); err != nil {
		return fmt.Errorf("answer: %w", err)
	}
	*a = Answer(vs)
	return nil
}

// Item is a single practice question. Items are immutable once built.
type Item struct {
	ID          string   `yaml:"id" json:"id"`
	Kind        Kind     `yaml:"kind" json:"kind"`
	Tag         string   `yaml:"tag" json:"tag,omitempty"`
	Prompt      string   `yaml:"prompt" json:"prompt"`
	Options     []string `yaml:"options" json:"options,omitempty"`
	Correct     Answer   `yaml:"correct" json:"correct,omitempty"`
	Explanation string   `yaml:"explanation" json:"explanation,omitempty"`
	Feedback    string   `yaml:"feedback" json:"feedback,omitempty"`
}

// Clone returns a copy that shares no slices with it.
func (it Item) Clone() Item {
	it.Options = slices.Clone(it.Options)
	it.Correct = slices.Clone(it.Correct)
	return it
}

// CloneItems deep-copies a question list.
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

// Scored reports whether the item has a reference answer.
func (it Item) Scored() bool {
	return !it.Correct.Empty()
}

// Check reports whether user is a correct answer for the item.
func (it Item) Check(user Answer) bool {
	return Check(it.Kind, user, it.Correct)
}

var (
	ErrMissingID      = errors.New("item has no id")
	ErrUnknownKind    = errors.New("unknown item kind")
	ErrNoOptions      = errors.New("choice item has no options")
	ErrAnswerNotInSet = errors.New("correct answer is not among the options")
	ErrDuplicateID    = errors.New("duplicate item id")
)

// Validate checks the structural rules for an item.
func (it Item) Validate() error {
	if it.ID == "" {
		return ErrMissingID
	}
	if !it.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, it.Kind)
	}
	if !it.Kind.IsChoice() {
		return nil
	}
	if len(it.Options) == 0 {
		return fmt.Errorf("%s: %w", it.ID, ErrNoOptions)
	}
	for _, c := range it.Correct {
		if !slices.Contains(it.Options, c) {
			return fmt.Errorf("%s: %w: %q", it.ID, ErrAnswerNotInSet, c)
		}
	}
	return nil
}

// ValidateItems validates every item and rejects repeated IDs, since answers
// are recorded per item ID.
func ValidateItems(items []Item) error {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return err
		}
		if seen[it.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, it.ID)
		}
		seen[it.ID] = true
	}
	return nil
}
