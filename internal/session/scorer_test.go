package session

import (
	"fmt"
	"slices"
	"testing"

	"github.com/abhisek/lumi/internal/quiz"
)

func TestScorer_CorrectAnswer(t *testing.T) {
	s := NewScorer()
	out := s.RecordAnswer("q1", quiz.Single("x = 5"), quiz.Single("x = 5"), quiz.SingleChoice)

	if !out.Correct || out.Combo != 1 || out.Duplicate {
		t.Errorf("outcome = %+v, want correct with combo 1", out)
	}
	sc := s.Score()
	if sc.Correct != 1 || sc.Combo != 1 || sc.MaxCombo != 1 {
		t.Errorf("score = %+v", sc)
	}
	if !slices.Equal(sc.MasteredIDs, []string{"q1"}) {
		t.Errorf("MasteredIDs = %v, want [q1]", sc.MasteredIDs)
	}
}

func TestScorer_WrongAnswerResetsCombo(t *testing.T) {
	s := NewScorer()
	s.Record("a", true)
	s.Record("b", true)
	out := s.Record("c", false)

	if out.Correct || out.Combo != 0 {
		t.Errorf("outcome = %+v, want incorrect with combo 0", out)
	}
	sc := s.Score()
	if sc.Correct != 2 {
		t.Errorf("Correct = %d, want 2 (never decremented)", sc.Correct)
	}
	if sc.MaxCombo != 2 {
		t.Errorf("MaxCombo = %d, want 2", sc.MaxCombo)
	}
	if slices.Contains(sc.MasteredIDs, "c") {
		t.Error("wrong answer must not be added to MasteredIDs")
	}
}

func TestScorer_MaxComboMonotonic(t *testing.T) {
	pattern := []bool{true, true, false, true, true, true, false, false, true, true, true, true, false, true}
	s := NewScorer()
	prevMax := 0
	for i, ok := range pattern {
		s.Record(fmt.Sprintf("item-%d", i), ok)
		if s.MaxCombo() < prevMax {
			t.Fatalf("MaxCombo decreased from %d to %d at %d", prevMax, s.MaxCombo(), i)
		}
		if s.MaxCombo() < s.Combo() {
			t.Fatalf("MaxCombo %d < Combo %d at %d", s.MaxCombo(), s.Combo(), i)
		}
		prevMax = s.MaxCombo()
	}
	if s.MaxCombo() != 4 {
		t.Errorf("MaxCombo = %d, want 4", s.MaxCombo())
	}
}

func TestScorer_DuplicateSubmissionIgnored(t *testing.T) {
	s := NewScorer()
	s.RecordAnswer("q1", quiz.Single("wrong"), quiz.Single("right"), quiz.SingleChoice)
	out := s.RecordAnswer("q1", quiz.Single("right"), quiz.Single("right"), quiz.SingleChoice)

	if !out.Duplicate {
		t.Error("second submission should be flagged as duplicate")
	}
	if out.Correct {
		t.Error("duplicate should report the first (incorrect) result")
	}
	if sc := s.Score(); sc.Correct != 0 || sc.Answered != 1 {
		t.Errorf("score = %+v, want no change from duplicate", sc)
	}
}

func TestScorer_MultiChoiceOrder(t *testing.T) {
	correct := quiz.Multi("A", "B")
	a := NewScorer()
	b := NewScorer()
	outA := a.RecordAnswer("m", quiz.Multi("A", "B"), correct, quiz.MultiChoice)
	outB := b.RecordAnswer("m", quiz.Multi("B", "A"), correct, quiz.MultiChoice)
	if outA.Correct != outB.Correct || !outA.Correct {
		t.Errorf("order changed correctness: %v vs %v", outA.Correct, outB.Correct)
	}
}

func TestScorer_Reset(t *testing.T) {
	s := NewScorer()
	s.Record("a", true)
	s.Record("b", true)
	s.Reset()

	sc := s.Score()
	if sc.Correct != 0 || sc.Combo != 0 || sc.MaxCombo != 0 || len(sc.MasteredIDs) != 0 || sc.Answered != 0 {
		t.Errorf("score after Reset = %+v, want zero", sc)
	}
	if out := s.Record("a", true); out.Duplicate {
		t.Error("Reset should forget answered items")
	}
}

func TestScorer_ScoreIsCopy(t *testing.T) {
	s := NewScorer()
	s.Record("a", true)
	sc := s.Score()
	sc.MasteredIDs[0] = "tampered"
	if got := s.Score().MasteredIDs[0]; got != "a" {
		t.Errorf("MasteredIDs[0] = %q, want %q", got, "a")
	}
}

func TestAggregate_XP(t *testing.T) {
	tests := []struct {
		name        string
		pattern     []bool
		wantCorrect int
		wantMax     int
		wantXP      int
	}{
		{
			name:        "ten correct",
			pattern:     []bool{true, true, true, true, true, true, true, true, true, true},
			wantCorrect: 10, wantMax: 10, wantXP: 250,
		},
		{
			name:        "two streaks of three",
			pattern:     []bool{true, true, true, false, true, true, true},
			wantCorrect: 6, wantMax: 3, wantXP: 135,
		},
		{
			name:        "all wrong",
			pattern:     []bool{false, false, false},
			wantCorrect: 0, wantMax: 0, wantXP: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScorer()
			for i, ok := range tt.pattern {
				s.Record(fmt.Sprintf("err%d", i), ok)
			}
			res := Aggregate(s.Score(), len(tt.pattern), DailyConquerXP)
			if res.Correct != tt.wantCorrect {
				t.Errorf("Correct = %d, want %d", res.Correct, tt.wantCorrect)
			}
			if res.MaxCombo != tt.wantMax {
				t.Errorf("MaxCombo = %d, want %d", res.MaxCombo, tt.wantMax)
			}
			if res.XPEarned != tt.wantXP {
				t.Errorf("XPEarned = %d, want %d", res.XPEarned, tt.wantXP)
			}
			if res.Total != len(tt.pattern) {
				t.Errorf("Total = %d, want %d", res.Total, len(tt.pattern))
			}
		})
	}
}

func TestAggregate_NoXP(t *testing.T) {
	res := Aggregate(Score{Correct: 3, MaxCombo: 3}, 3, NoXP)
	if res.XPEarned != 0 {
		t.Errorf("XPEarned = %d, want 0", res.XPEarned)
	}
	if !res.Perfect() {
		t.Error("3/3 should be perfect")
	}
	if res.Accuracy() != 1 {
		t.Errorf("Accuracy() = %v, want 1", res.Accuracy())
	}
}

func TestResult_EmptyAccuracy(t *testing.T) {
	var r Result
	if r.Accuracy() != 0 || r.Perfect() {
		t.Errorf("empty result: accuracy=%v perfect=%v", r.Accuracy(), r.Perfect())
	}
}
