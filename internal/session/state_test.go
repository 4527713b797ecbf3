package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/abhisek/lumi/internal/quiz"
)

func singleItems(n int) []quiz.Item {
	items := make([]quiz.Item, n)
	for i := range items {
		items[i] = quiz.Item{
			ID:      fmt.Sprintf("item-%d", i),
			Kind:    quiz.SingleChoice,
			Options: []string{"right", "wrong"},
			Correct: quiz.Single("right"),
		}
	}
	return items
}

func playFlow(t *testing.T, f *Flow, pattern []bool) {
	t.Helper()
	for i, ok := range pattern {
		ans := "wrong"
		if ok {
			ans = "right"
		}
		if _, served := f.Answer(quiz.Single(ans)); !served {
			t.Fatalf("item %d: Answer() not served in stage %s", i, f.Stage())
		}
		done := f.Next()
		if done != (i == len(pattern)-1) {
			t.Fatalf("item %d: Next() = %v", i, done)
		}
	}
}

func TestFlow_StageMachine(t *testing.T) {
	f := NewFlow(singleItems(3), DailyConquerXP)
	var changes []string
	f.OnStageChange(func(from, to Stage) { changes = append(changes, from.String()+"->"+to.String()) })

	if f.Stage() != StageBriefing {
		t.Fatalf("initial stage = %s, want briefing", f.Stage())
	}
	if !f.Start() {
		t.Fatal("Start() = false")
	}
	playFlow(t, f, []bool{true, true, true})

	if f.Stage() != StageDebrief {
		t.Fatalf("stage = %s, want debrief", f.Stage())
	}
	want := []string{"briefing->active", "active->debrief"}
	if fmt.Sprint(changes) != fmt.Sprint(want) {
		t.Errorf("stage changes = %v, want %v", changes, want)
	}

	res, ok := f.Result()
	if !ok {
		t.Fatal("Result() not available in debrief")
	}
	if res.Correct != 3 || res.XPEarned != 3*20+3*5 {
		t.Errorf("result = %+v", res)
	}
}

func TestFlow_DailyConquerTenPerfect(t *testing.T) {
	f := NewFlow(singleItems(10), DailyConquerXP)
	f.Start()
	pattern := make([]bool, 10)
	for i := range pattern {
		pattern[i] = true
	}
	playFlow(t, f, pattern)

	res, _ := f.Result()
	if res.XPEarned != 250 {
		t.Errorf("XPEarned = %d, want 250", res.XPEarned)
	}
	if len(res.MasteredIDs) != 10 {
		t.Errorf("len(MasteredIDs) = %d, want 10", len(res.MasteredIDs))
	}
}

func TestFlow_TwoStreaks(t *testing.T) {
	f := NewFlow(singleItems(7), DailyConquerXP)
	f.Start()
	playFlow(t, f, []bool{true, true, true, false, true, true, true})

	res, _ := f.Result()
	if res.Correct != 6 || res.MaxCombo != 3 || res.XPEarned != 135 {
		t.Errorf("result = %+v, want 6 correct, max combo 3, 135 XP", res)
	}
}

func TestFlow_AllIncorrect(t *testing.T) {
	f := NewFlow(singleItems(4), DailyConquerXP)
	f.Start()
	playFlow(t, f, []bool{false, false, false, false})

	res, _ := f.Result()
	if res.Correct != 0 || res.MaxCombo != 0 || res.XPEarned != 0 || len(res.MasteredIDs) != 0 {
		t.Errorf("result = %+v, want zero", res)
	}
}

func TestFlow_SingleItem(t *testing.T) {
	f := NewFlow(singleItems(1), DailyConquerXP)
	f.Start()
	f.Answer(quiz.Single("right"))
	if !f.Next() {
		t.Fatal("Next() on single item should finish the flow")
	}
	if f.Next() {
		t.Error("Next() after debrief should be a no-op")
	}
	res, _ := f.Result()
	if res.Total != 1 || !res.Perfect() {
		t.Errorf("result = %+v", res)
	}
}

func TestFlow_EmptyNeverAggregates(t *testing.T) {
	f := NewFlow(nil, DailyConquerXP)
	if f.Start() {
		t.Error("Start() on empty flow = true, want false")
	}
	if f.Stage() != StageBriefing {
		t.Errorf("stage = %s, want briefing", f.Stage())
	}
	if f.Next() {
		t.Error("Next() on empty flow = true")
	}
	if _, ok := f.Result(); ok {
		t.Error("empty flow produced a result")
	}
	if _, err := f.Current(); err == nil {
		t.Error("Current() on empty flow should report ErrEmpty")
	}
}

func TestFlow_Abort(t *testing.T) {
	f := NewFlow(singleItems(2), DailyConquerXP)
	if !f.Abort() {
		t.Fatal("Abort() in briefing = false")
	}
	if !f.Aborted() {
		t.Error("Aborted() = false")
	}
	if f.Start() {
		t.Error("Start() after Abort() should be refused")
	}
}

func TestFlow_AnswerOutsideActive(t *testing.T) {
	f := NewFlow(singleItems(2), DailyConquerXP)
	if _, served := f.Answer(quiz.Single("right")); served {
		t.Error("Answer() in briefing should not be served")
	}
}

func TestFlow_DuplicateAnswerIgnored(t *testing.T) {
	f := NewFlow(singleItems(2), DailyConquerXP)
	f.Start()
	f.Answer(quiz.Single("wrong"))
	out, _ := f.Answer(quiz.Single("right"))
	if !out.Duplicate || out.Correct {
		t.Errorf("second answer outcome = %+v, want ignored duplicate", out)
	}
	if f.Score().Correct != 0 {
		t.Errorf("Correct = %d, want 0", f.Score().Correct)
	}
}

func TestFlow_SeekDoesNotScore(t *testing.T) {
	f := NewFlow(singleItems(4), DailyConquerXP)
	f.Start()
	f.Answer(quiz.Single("right"))
	before := f.Score()

	for _, i := range []int{-1, 4, 2, 0} {
		f.Seek(i)
	}
	after := f.Score()
	if before.Correct != after.Correct || before.Combo != after.Combo || before.MaxCombo != after.MaxCombo {
		t.Errorf("Seek changed score: %+v -> %+v", before, after)
	}
	if f.Seek(-1) != 0 || f.Seek(4) != 3 {
		t.Error("Seek did not clamp")
	}
}

func TestFlow_ResultSnapshotClearsScore(t *testing.T) {
	f := NewFlow(singleItems(2), DailyConquerXP)
	f.Start()
	playFlow(t, f, []bool{true, false})

	if sc := f.Score(); sc.Correct != 0 || sc.Answered != 0 {
		t.Errorf("live score after debrief = %+v, want cleared", sc)
	}
	if ok, seen := f.Correctness("item-0"); !ok || !seen {
		t.Error("review correctness for item-0 should be kept")
	}
	if ok, seen := f.Correctness("item-1"); ok || !seen {
		t.Error("review correctness for item-1 should be incorrect")
	}
}

func TestFlow_Reset(t *testing.T) {
	f := NewFlow(singleItems(2), DailyConquerXP)
	firstID := f.ID
	f.Start()
	playFlow(t, f, []bool{true, true})
	f.Reset()

	if f.Stage() != StageBriefing {
		t.Errorf("stage after Reset = %s", f.Stage())
	}
	if _, ok := f.Result(); ok {
		t.Error("Result() should be cleared by Reset")
	}
	if f.ID == firstID {
		t.Error("Reset should start a new run ID")
	}
	if !f.Start() {
		t.Fatal("Start() after Reset = false")
	}
	playFlow(t, f, []bool{false, true})
	res, _ := f.Result()
	if res.Correct != 1 {
		t.Errorf("Correct after replay = %d, want 1", res.Correct)
	}
}

func TestFlow_UnscoredItems(t *testing.T) {
	items := []quiz.Item{
		{ID: "pref-1", Kind: quiz.SingleChoice, Options: []string{"L", "R"}},
		{ID: "q", Kind: quiz.SingleChoice, Options: []string{"a", "b"}, Correct: quiz.Single("a")},
	}
	f := NewFlow(items, NoXP)
	f.Start()
	out, _ := f.Answer(quiz.Single("L"))
	if out.Correct {
		t.Error("unscored item reported correct")
	}
	if resp, ok := f.Response("pref-1"); !ok || resp.String() != "L" {
		t.Errorf("Response(pref-1) = %v, %v", resp, ok)
	}
	f.Next()
	f.Answer(quiz.Single("a"))
	f.Next()

	res, _ := f.Result()
	if res.Correct != 1 || res.MaxCombo != 1 {
		t.Errorf("result = %+v, want the scored item only", res)
	}
}

func TestFlow_ResultCarriesRunIdentity(t *testing.T) {
	f := NewFlow(singleItems(2), NoXP)
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	f.now = func() time.Time { return start }
	if f.ID == "" {
		t.Fatal("new flow has no ID")
	}
	f.Start()
	playFlow(t, f, []bool{true, false})

	res, _ := f.Result()
	if res.SessionID != f.ID {
		t.Errorf("SessionID = %q, want %q", res.SessionID, f.ID)
	}
	if !res.StartedAt.Equal(start) {
		t.Errorf("StartedAt = %v, want %v", res.StartedAt, start)
	}

	first := f.ID
	f.Reset()
	if f.ID == first || f.ID == "" {
		t.Errorf("Reset should start a new run, ID = %q", f.ID)
	}
}
