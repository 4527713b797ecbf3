package session

import "github.com/abhisek/lumi/internal/quiz"

// Score is a point-in-time copy of a scorer's counters.
type Score struct {
	Correct     int
	Combo       int
	MaxCombo    int
	Answered    int
	MasteredIDs []string
}

// Outcome describes what a single RecordAnswer call did.
type Outcome struct {
	ItemID  string
	Correct bool

	// Duplicate is set when the item was already answered this session.
	// The earlier answer stands and nothing was recorded.
	Duplicate bool

	// Combo is the streak after this answer.
	Combo int
}

// Scorer accumulates correctness for one session.
type Scorer struct {
	correct  int
	combo    int
	maxCombo int
	mastered []string
	answers  map[string]bool
}

// NewScorer returns an empty scorer.
func NewScorer() *Scorer {
	return &Scorer{answers: make(map[string]bool)}
}

// RecordAnswer checks user against correct for kind and updates the
// counters. Only the first submission for an itemID counts.
func (s *Scorer) RecordAnswer(itemID string, user, correct quiz.Answer, kind quiz.Kind) Outcome {
	return s.Record(itemID, quiz.Check(kind, user, correct))
}

// Record applies an already-checked result for itemID.
func (s *Scorer) Record(itemID string, correct bool) Outcome {
	if s.answers == nil {
		s.answers = make(map[string]bool)
	}
	if prev, ok := s.answers[itemID]; ok {
		return Outcome{ItemID: itemID, Correct: prev, Duplicate: true, Combo: s.combo}
	}
	s.answers[itemID] = correct

	if correct {
		s.correct++
		s.combo++
		s.maxCombo = max(s.maxCombo, s.combo)
		s.mastered = append(s.mastered, itemID)
	} else {
		s.combo = 0
	}
	return Outcome{ItemID: itemID, Correct: correct, Combo: s.combo}
}

// Answered reports whether itemID was recorded and if so whether it was correct.
func (s *Scorer) Answered(itemID string) (correct, ok bool) {
	correct, ok = s.answers[itemID]
	return correct, ok
}

// Combo returns the current streak.
func (s *Scorer) Combo() int { return s.combo }

// MaxCombo returns the longest streak so far.
func (s *Scorer) MaxCombo() int { return s.maxCombo }

// Score returns a copy of the counters.
func (s *Scorer) Score() Score {
	ids := make([]string, len(s.mastered))
	copy(ids, s.mastered)
	return Score{
		Correct:     s.correct,
		Combo:       s.combo,
		MaxCombo:    s.maxCombo,
		Answered:    len(s.answers),
		MasteredIDs: ids,
	}
}

// Reset clears all counters.
func (s *Scorer) Reset() {
	s.correct = 0
	s.combo = 0
	s.maxCombo = 0
	s.mastered = nil
	s.answers = make(map[string]bool)
}
