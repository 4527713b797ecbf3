package plan

import (
	"errors"
	"slices"
	"testing"

	"github.com/abhisek/lumi/internal/subject"
)

func testPlan() DayPlan {
	return DayPlan{
		ID:    "today",
		Title: "今日计划",
		Tasks: []Task{
			{ID: "t1", Title: "二次函数图像", Subject: subject.Math, DurationMinutes: 20},
			{ID: "t2", Title: "古诗背诵", Subject: subject.Chinese, DurationMinutes: 15},
			{ID: "t3", Title: "阅读理解", Subject: subject.English, DurationMinutes: 30},
		},
		TotalXP: 450,
	}
}

func TestToggle(t *testing.T) {
	b := NewBoard(testPlan())

	done, err := b.Toggle("t2")
	if err != nil {
		t.Fatal(err)
	}
	if !done {
		t.Error("first toggle should complete the task")
	}
	done, _ = b.Toggle("t2")
	if done {
		t.Error("second toggle should reopen the task")
	}
	if _, err := b.Toggle("t9"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("err = %v, want ErrTaskNotFound", err)
	}
	if n := len(b.Plan().Tasks); n != 3 {
		t.Errorf("tasks = %d, toggling must never remove tasks", n)
	}
}

func TestNewBoardCopies(t *testing.T) {
	p := testPlan()
	b := NewBoard(p)
	b.Toggle("t1")
	if p.Tasks[0].Completed {
		t.Error("board mutated its input")
	}
	out := b.Plan()
	out.Tasks[0].Title = "changed"
	if tk, _ := b.Task("t1"); tk.Title == "changed" {
		t.Error("Plan() leaked internal state")
	}
}

func TestFilter(t *testing.T) {
	b := NewBoard(testPlan())
	b.Toggle("t1")

	tests := []struct {
		filter Filter
		want   []string
	}{
		{FilterAll, []string{"t1", "t2", "t3"}},
		{FilterPending, []string{"t2", "t3"}},
		{FilterDone, []string{"t1"}},
	}
	for _, tt := range tests {
		var got []string
		for _, tk := range b.Filter(tt.filter) {
			got = append(got, tk.ID)
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("Filter(%s) = %v, want %v", tt.filter, got, tt.want)
		}
	}
}

func TestParseFilter(t *testing.T) {
	if f, err := ParseFilter(""); err != nil || f != FilterAll {
		t.Errorf("ParseFilter(\"\") = %q, %v", f, err)
	}
	if _, err := ParseFilter("later"); err == nil {
		t.Error("expected error for unknown filter")
	}
}

func TestBySubject(t *testing.T) {
	b := NewBoard(testPlan())
	got := b.BySubject(subject.English)
	if len(got) != 1 || got[0].ID != "t3" {
		t.Errorf("BySubject(english) = %+v", got)
	}
}

func TestProgress(t *testing.T) {
	b := NewBoard(testPlan())
	b.Toggle("t1")
	b.Toggle("t3")

	p := b.Progress()
	if p.Done != 2 || p.Total != 3 {
		t.Errorf("Done/Total = %d/%d, want 2/3", p.Done, p.Total)
	}
	if p.MinutesDone != 50 || p.MinutesTotal != 65 {
		t.Errorf("minutes = %d/%d, want 50/65", p.MinutesDone, p.MinutesTotal)
	}
	if p.Percent() != 66 {
		t.Errorf("Percent() = %d, want 66", p.Percent())
	}
	if (Progress{}).Percent() != 0 {
		t.Error("empty progress should be 0%")
	}
}

func TestCompletedAndRestore(t *testing.T) {
	b := NewBoard(testPlan())
	b.Toggle("t2")
	ids := b.Completed()
	if !slices.Equal(ids, []string{"t2"}) {
		t.Fatalf("Completed() = %v", ids)
	}

	other := NewBoard(testPlan())
	other.Toggle("t1")
	other.Restore(append(ids, "ghost"))
	if !slices.Equal(other.Completed(), []string{"t2"}) {
		t.Errorf("after Restore = %v, want [t2]", other.Completed())
	}
}

func TestUserStats(t *testing.T) {
	tests := []struct {
		stats     UserStats
		progress  float64
		remaining int
	}{
		{UserStats{XPToday: 300, XPTarget: 600}, 0.5, 300},
		{UserStats{XPToday: 800, XPTarget: 600}, 1, 0},
		{UserStats{XPToday: 10}, 0, 0},
	}
	for _, tt := range tests {
		if got := tt.stats.XPProgress(); got != tt.progress {
			t.Errorf("XPProgress(%+v) = %v, want %v", tt.stats, got, tt.progress)
		}
		if got := tt.stats.XPRemaining(); got != tt.remaining {
			t.Errorf("XPRemaining(%+v) = %d, want %d", tt.stats, got, tt.remaining)
		}
	}

	s := UserStats{XPToday: 350, StudyMinutesToday: 120}
	s.Credit(250, 15)
	if s.XPToday != 600 || s.StudyMinutesToday != 135 {
		t.Errorf("after Credit = %+v", s)
	}
}
