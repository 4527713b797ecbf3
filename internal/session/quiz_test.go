package session

import (
	"testing"

	"github.com/abhisek/lumi/internal/quiz"
)

func mathItems() []quiz.Item {
	return []quiz.Item{
		{
			ID: "q1", Kind: quiz.SingleChoice, Tag: "一元一次方程",
			Prompt:  "已知方程 2x + 5 = 15，求 x 的值是多少？",
			Options: []string{"x = 2", "x = 5", "x = 10", "x = 4"},
			Correct: quiz.Single("x = 5"),
		},
		{
			ID: "q2", Kind: quiz.MultiChoice, Tag: "移项",
			Options: []string{"移项要变号", "移项是从方程的一边移到另一边", "常数项不能移项", "移项相当于方程两边同时加减"},
			Correct: quiz.Multi("移项要变号", "移项是从方程的一边移到另一边", "移项相当于方程两边同时加减"),
		},
		{
			ID: "q3", Kind: quiz.FreeText, Tag: "合并同类项",
			Correct: quiz.Single("-2x"),
		},
	}
}

func TestQuiz_SubmitAllCorrect(t *testing.T) {
	q := NewQuiz(mathItems())
	if !q.Start() {
		t.Fatal("Start() = false")
	}

	q.Choose("x = 5")
	if q.Next() {
		t.Fatal("Next() on first item should not submit")
	}
	q.Toggle("移项相当于方程两边同时加减")
	q.Toggle("常数项不能移项")
	q.Toggle("移项要变号")
	q.Toggle("常数项不能移项") // deselect
	q.Toggle("移项是从方程的一边移到另一边")
	q.Next()
	q.Type("-2x")
	if !q.Next() {
		t.Fatal("Next() on last item should submit")
	}

	res, ok := q.Result()
	if !ok {
		t.Fatal("no result after submit")
	}
	if res.Correct != 3 || res.Total != 3 {
		t.Errorf("result = %+v, want 3/3", res)
	}
	if res.XPEarned != 0 {
		t.Errorf("quiz XPEarned = %d, want 0", res.XPEarned)
	}
}

func TestQuiz_ChangeDraftBeforeSubmit(t *testing.T) {
	q := NewQuiz(mathItems())
	q.Start()
	q.Choose("x = 2")
	q.Next()
	q.Seek(0) // back via the answer grid
	q.Choose("x = 5")
	q.Seek(2)
	q.Type("-2X")
	q.Next()

	res, _ := q.Result()
	if res.Correct != 1 {
		t.Errorf("Correct = %d, want 1 (q1 fixed, q2 blank, q3 wrong case)", res.Correct)
	}

	entry, ok := q.Review(0)
	if !ok || !entry.Correct || entry.Answer.String() != "x = 5" {
		t.Errorf("Review(0) = %+v", entry)
	}
	entry, _ = q.Review(1)
	if entry.Correct || !entry.Answer.Empty() {
		t.Errorf("Review(1) = %+v, want unanswered and incorrect", entry)
	}
	entry, _ = q.Review(99)
	if entry.Index != 2 || entry.Item.ID != "q3" {
		t.Errorf("Review(99) = %+v, want clamped to q3", entry)
	}
}

func TestQuiz_WrongKindEditsIgnored(t *testing.T) {
	q := NewQuiz(mathItems())
	q.Start()
	q.Toggle("x = 5") // q1 is single-choice
	q.Type("x = 5")
	if !q.Draft("q1").Empty() {
		t.Errorf("Draft(q1) = %v, want empty", q.Draft("q1"))
	}
	if q.AnsweredCount() != 0 {
		t.Errorf("AnsweredCount() = %d, want 0", q.AnsweredCount())
	}
}

func TestQuiz_EditsBeforeStartIgnored(t *testing.T) {
	q := NewQuiz(mathItems())
	q.Choose("x = 5")
	if !q.Draft("q1").Empty() {
		t.Error("drafts should not change during the briefing")
	}
}

func TestQuiz_Empty(t *testing.T) {
	q := NewQuiz(nil)
	if q.Start() {
		t.Error("Start() on empty quiz = true")
	}
	if q.Next() {
		t.Error("Next() on empty quiz = true")
	}
	if _, ok := q.Result(); ok {
		t.Error("empty quiz must never aggregate")
	}
	if _, ok := q.Review(0); ok {
		t.Error("Review(0) on empty quiz = ok")
	}
}

func TestQuiz_Reset(t *testing.T) {
	q := NewQuiz(mathItems())
	q.Start()
	q.Choose("x = 5")
	q.Reset()
	if q.Flow().Stage() != StageBriefing {
		t.Errorf("stage = %s, want briefing", q.Flow().Stage())
	}
	if !q.Draft("q1").Empty() {
		t.Error("Reset should clear drafts")
	}
}
