// Package subject defines the closed set of school subjects a learner works on.
package subject

import (
	"errors"
	"fmt"
	"strings"
)

// Subject identifies a school subject.
type Subject string

const (
	Math    Subject = "math"
	Chinese Subject = "chinese"
	English Subject = "english"
)

// ErrUnknown is returned when a subject key does not name a known subject.
var ErrUnknown = errors.New("unknown subject")

// All lists subjects in display order.
var All = []Subject{Math, Chinese, English}

var labels = map[Subject]string{
	Math:    "数学",
	Chinese: "语文",
	English: "英语",
}

var names = map[Subject]string{
	Math:    "Math",
	Chinese: "Chinese",
	English: "English",
}

// lookup maps every accepted key to its subject. Keys are matched whole,
// never by substring.
var lookup = map[string]Subject{
	"math":    Math,
	"chinese": Chinese,
	"english": English,
	"数学":      Math,
	"语文":      Chinese,
	"英语":      English,
}

// Parse resolves a subject key (English identifier or Chinese label).
func Parse(s string) (Subject, error) {
	if subj, ok := lookup[strings.ToLower(strings.TrimSpace(s))]; ok {
		return subj, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknown, s)
}

// Valid reports whether s is one of the known subjects.
func (s Subject) Valid() bool {
	_, ok := labels[s]
	return ok
}

// Label returns the Chinese display label.
func (s Subject) Label() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

// Name returns the English display name.
func (s Subject) Name() string {
	if n, ok := names[s]; ok {
		return n
	}
	return string(s)
}

func (s Subject) String() string {
	return string(s)
}
