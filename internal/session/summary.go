package session

import "time"

// XPRules are the constants used to turn a score into experience points.
type XPRules struct {
	PerItem    int
	ComboBonus int
}

var (
	// DailyConquerXP awards 20 XP per correct item and 5 XP per combo step.
	DailyConquerXP = XPRules{PerItem: 20, ComboBonus: 5}

	// NoXP is used by flows whose XP is not computed from the score.
	NoXP = XPRules{}
)

// Result is the summary of a finished session. It holds copies and is
// never mutated after Aggregate returns it. SessionID and StartedAt are
// filled by the flow that produced it.
type Result struct {
	SessionID   string
	StartedAt   time.Time
	Correct     int
	Total       int
	MaxCombo    int
	XPEarned    int
	MasteredIDs []string
}

// Aggregate builds the session result from a final score.
func Aggregate(score Score, total int, rules XPRules) Result {
	ids := make([]string, len(score.MasteredIDs))
	copy(ids, score.MasteredIDs)
	return Result{
		Correct:     score.Correct,
		Total:       total,
		MaxCombo:    score.MaxCombo,
		XPEarned:    score.Correct*rules.PerItem + score.MaxCombo*rules.ComboBonus,
		MasteredIDs: ids,
	}
}

// Perfect reports whether every item was answered correctly.
func (r Result) Perfect() bool {
	return r.Total > 0 && r.Correct == r.Total
}

// Accuracy returns the fraction of correct items.
func (r Result) Accuracy() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total)
}
