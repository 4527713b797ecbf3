// Package lesson models timed lessons (board notes, poem lines, dialogue)
// and the lesson -> quiz -> review learning flow built around them.
package lesson

import (
	"slices"
	"time"

	"github.com/abhisek/lumi/internal/subject"
)

// Format selects how lesson points are presented.
type Format string

const (
	FormatBoard    Format = "board"    // Worked steps on a board
	FormatPoem     Format = "poem"     // Poem lines with translations
	FormatDialogue Format = "dialogue" // Two-speaker script
)

// Point is a timestamped lesson step the player can jump to.
type Point struct {
	ID          string   `yaml:"id" json:"id"`
	At          float64  `yaml:"at" json:"at"` // seconds from start
	Text        string   `yaml:"text" json:"text"`
	Explanation string   `yaml:"explanation" json:"explanation,omitempty"`
	Speaker     string   `yaml:"speaker" json:"speaker,omitempty"`
	Role        string   `yaml:"role" json:"role,omitempty"`
	Notes       []string `yaml:"notes" json:"notes,omitempty"`
	KeyStep     bool     `yaml:"key_step" json:"key_step,omitempty"`
}

// Offset returns the point's position in the lesson.
func (p Point) Offset() time.Duration {
	return time.Duration(p.At * float64(time.Second))
}

// Note is a side panel entry such as a pitfall or an appreciation.
type Note struct {
	Title string `yaml:"title" json:"title"`
	Body  string `yaml:"body" json:"body"`
}

// Vocab is a key word of a dialogue lesson.
type Vocab struct {
	Word      string `yaml:"word" json:"word"`
	Phonetics string `yaml:"phonetics" json:"phonetics"`
	Meaning   string `yaml:"meaning" json:"meaning"`
}

// Lesson is one short recorded lesson.
type Lesson struct {
	Subject         subject.Subject `yaml:"subject" json:"subject"`
	Title           string          `yaml:"title" json:"title"`
	Format          Format          `yaml:"format" json:"format"`
	DurationSeconds int             `yaml:"duration" json:"duration"`
	Author          string          `yaml:"author" json:"author,omitempty"`
	Dynasty         string          `yaml:"dynasty" json:"dynasty,omitempty"`
	Points          []Point         `yaml:"points" json:"points"`
	Notes           []Note          `yaml:"notes" json:"notes,omitempty"`
	Vocab           []Vocab         `yaml:"vocab" json:"vocab,omitempty"`
}

// Clone returns a deep copy of l.
func (l Lesson) Clone() Lesson {
	l.Points = slices.Clone(l.Points)
	for i := range l.Points {
		l.Points[i].Notes = slices.Clone(l.Points[i].Notes)
	}
	l.Notes = slices.Clone(l.Notes)
	l.Vocab = slices.Clone(l.Vocab)
	return l
}

// Duration returns the lesson length.
func (l Lesson) Duration() time.Duration {
	return time.Duration(l.DurationSeconds) * time.Second
}
