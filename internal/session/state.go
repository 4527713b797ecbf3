package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/lumi/internal/quiz"
)

// Stage is the position of a flow in its briefing/active/debrief cycle.
type Stage int

const (
	StageBriefing Stage = iota // Waiting for the learner to opt in
	StageActive                // Serving items
	StageDebrief               // Result available, terminal until Reset
)

func (s Stage) String() string {
	switch s {
	case StageBriefing:
		return "briefing"
	case StageActive:
		return "active"
	case StageDebrief:
		return "debrief"
	}
	return "unknown"
}

// Flow runs one pass over an item queue: briefing, then an answer loop,
// then a debrief holding the aggregated result.
type Flow struct {
	// ID identifies this run; it is copied into the Result.
	ID string

	// StartedAt is set when the learner opts in.
	StartedAt time.Time

	stages    *Sequencer[Stage]
	cursor    *Cursor[quiz.Item]
	scorer    *Scorer
	rules     XPRules
	responses map[string]quiz.Answer
	review    map[string]bool
	result    *Result
	aborted   bool
	now       func() time.Time
}

// NewFlow creates a flow in the briefing stage.
func NewFlow(items []quiz.Item, rules XPRules) *Flow {
	return &Flow{
		ID:        uuid.New().String(),
		stages:    NewSequencer(StageBriefing, StageActive, StageDebrief),
		cursor:    NewCursor(items),
		scorer:    NewScorer(),
		rules:     rules,
		responses: make(map[string]quiz.Answer),
		now:       time.Now,
	}
}

// OnStageChange registers a host callback for stage transitions.
func (f *Flow) OnStageChange(fn func(from, to Stage)) {
	f.stages.OnChange(fn)
}

// Stage returns the current stage.
func (f *Flow) Stage() Stage { return f.stages.Current() }

// Len returns the number of items in the queue.
func (f *Flow) Len() int { return f.cursor.Len() }

// Index returns the cursor position.
func (f *Flow) Index() int { return f.cursor.Index() }

// Empty reports whether there is nothing to play.
func (f *Flow) Empty() bool { return f.cursor.Len() == 0 }

// Items returns a copy of the queue.
func (f *Flow) Items() []quiz.Item { return f.cursor.Items() }

// Aborted reports whether the learner opted out during the briefing.
func (f *Flow) Aborted() bool { return f.aborted }

// Start opts in and enters the active stage. An empty queue stays in the
// briefing so the host can render its empty state.
func (f *Flow) Start() bool {
	if f.Stage() != StageBriefing || f.aborted || f.Empty() {
		return false
	}
	f.StartedAt = f.now()
	return f.stages.Advance()
}

// Abort opts out during the briefing. No session is created.
func (f *Flow) Abort() bool {
	if f.Stage() != StageBriefing {
		return false
	}
	f.aborted = true
	return true
}

// Current returns the item being served.
func (f *Flow) Current() (quiz.Item, error) {
	return f.cursor.Current()
}

// Answer records the learner's answer for the current item. The bool is
// false when no item is being served. Items without a reference answer are
// kept as responses but not scored.
func (f *Flow) Answer(user quiz.Answer) (Outcome, bool) {
	if f.Stage() != StageActive {
		return Outcome{}, false
	}
	item, err := f.cursor.Current()
	if err != nil {
		return Outcome{}, false
	}
	if _, seen := f.responses[item.ID]; seen {
		correct, _ := f.scorer.Answered(item.ID)
		return Outcome{ItemID: item.ID, Correct: correct, Duplicate: true, Combo: f.scorer.Combo()}, true
	}
	f.responses[item.ID] = user
	if !item.Scored() {
		return Outcome{ItemID: item.ID, Combo: f.scorer.Combo()}, true
	}
	return f.scorer.RecordAnswer(item.ID, user, item.Correct, item.Kind), true
}

// Response returns what the learner answered for itemID.
func (f *Flow) Response(itemID string) (quiz.Answer, bool) {
	a, ok := f.responses[itemID]
	return a, ok
}

// Next advances the cursor. When the cursor passes the last item the flow
// aggregates the score and enters the debrief; Next then returns true.
func (f *Flow) Next() bool {
	if f.Stage() != StageActive {
		return false
	}
	if !f.cursor.Advance() {
		return false
	}
	f.finish()
	return true
}

// Seek moves the cursor for navigation. Scores are unaffected.
func (f *Flow) Seek(i int) int {
	return f.cursor.Seek(i)
}

// Score returns the live score. After the debrief it is empty.
func (f *Flow) Score() Score {
	return f.scorer.Score()
}

// Correctness reports whether itemID was answered correctly. It works
// during the session and on the debrief review grid.
func (f *Flow) Correctness(itemID string) (correct, ok bool) {
	if f.review != nil {
		correct, ok = f.review[itemID]
		return correct, ok
	}
	return f.scorer.Answered(itemID)
}

// Result returns the aggregated result once the flow is in its debrief.
func (f *Flow) Result() (Result, bool) {
	if f.result == nil {
		return Result{}, false
	}
	return *f.result, true
}

// Reset returns the flow to its briefing with all state cleared.
func (f *Flow) Reset() {
	f.stages.Reset()
	f.cursor.Reset()
	f.scorer.Reset()
	f.responses = make(map[string]quiz.Answer)
	f.review = nil
	f.result = nil
	f.aborted = false
	f.StartedAt = time.Time{}
	f.ID = uuid.New().String()
}

// finish snapshots the score into the result and clears the scorer.
func (f *Flow) finish() {
	res := Aggregate(f.scorer.Score(), f.cursor.Len(), f.rules)
	res.SessionID = f.ID
	res.StartedAt = f.StartedAt
	f.result = &res
	f.review = make(map[string]bool, len(f.scorer.answers))
	for id, ok := range f.scorer.answers {
		f.review[id] = ok
	}
	f.scorer.Reset()
	f.stages.Advance()
}
