// Package vault keeps the learner's mistake items: filtering, starring,
// confirmed mastery transitions and the daily conquer run.
package vault

import (
	"time"

	"github.com/abhisek/lumi/internal/subject"
)

// Status is the review state of a mistake item.
type Status string

const (
	StatusNew       Status = "new"       // Not reviewed yet
	StatusReviewing Status = "reviewing" // Seen again at least once
	StatusMastered  Status = "mastered"  // Confirmed solved, hidden from review
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusReviewing, StatusMastered:
		return true
	}
	return false
}

// ErrorType classifies why the learner got the question wrong.
type ErrorType string

const (
	ErrorCalculation ErrorType = "calculation"
	ErrorConcept     ErrorType = "concept"
	ErrorMisread     ErrorType = "misread"
	ErrorStuck       ErrorType = "stuck"
)

var errorLabels = map[ErrorType]string{
	ErrorCalculation: "计算错误",
	ErrorConcept:     "概念模糊",
	ErrorMisread:     "审题不清",
	ErrorStuck:       "思路卡壳",
}

// Label returns the display label for the error type.
func (e ErrorType) Label() string {
	if l, ok := errorLabels[e]; ok {
		return l
	}
	return string(e)
}

// Stats are the per-item review counters.
type Stats struct {
	ErrorCount         int       `yaml:"error_count" json:"error_count"`
	ReviewCount        int       `yaml:"review_count" json:"review_count"`
	ConsecutiveCorrect int       `yaml:"consecutive_correct" json:"consecutive_correct"`
	Starred            bool      `yaml:"starred" json:"starred"`
	LastWrongDate      time.Time `yaml:"last_wrong" json:"last_wrong"`
}

// Item is one recorded mistake.
type Item struct {
	ID            string          `yaml:"id" json:"id"`
	Snippet       string          `yaml:"snippet" json:"snippet"`
	Question      string          `yaml:"question" json:"question"`
	Subject       subject.Subject `yaml:"subject" json:"subject"`
	Topic         string          `yaml:"topic" json:"topic"`
	ErrorType     ErrorType       `yaml:"error_type" json:"error_type"`
	Status        Status          `yaml:"status" json:"status"`
	Tags          []string        `yaml:"tags" json:"tags,omitempty"`
	Stats         Stats           `yaml:"stats" json:"stats"`
	CorrectAnswer string          `yaml:"correct_answer" json:"correct_answer"`
	WrongAnswer   string          `yaml:"wrong_answer" json:"wrong_answer,omitempty"`
	Analysis      string          `yaml:"analysis" json:"analysis"`
}

// Pending reports whether the item still needs review.
func (it Item) Pending() bool {
	return it.Status != StatusMastered
}

// Group is a topic bucket of items.
type Group struct {
	Topic string `yaml:"topic" json:"topic"`
	Items []Item `yaml:"items" json:"items"`
}

// Count returns the number of items in the group.
func (g Group) Count() int { return len(g.Items) }

// SubjectStat summarises one subject's items.
type SubjectStat struct {
	Subject       subject.Subject `json:"subject"`
	Pending       int             `json:"pending"`
	SolvedPercent int             `json:"solved_percent"`
	TotalItems    int             `json:"total"`
}

// Transition is a status change applied to an item.
type Transition struct {
	ItemID  string
	From    Status
	To      Status
	Trigger Trigger
}

// Trigger names what caused a transition.
type Trigger string

const (
	TriggerConfirm Trigger = "confirm" // Explicit confirmation dialog
	TriggerConquer Trigger = "conquer" // Daily conquer batch commit
	TriggerReview  Trigger = "review"  // Review practice
	TriggerRestore Trigger = "restore" // Replay of persisted state
	TriggerStar    Trigger = "star"
	TriggerUnstar  Trigger = "unstar"
)
