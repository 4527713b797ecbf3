package today

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lumi/internal/bootstrap"
	"github.com/abhisek/lumi/internal/config"
)

func newTestScreen(t *testing.T) (*PlanScreen, *bootstrap.Deps) {
	t.Helper()
	d, err := bootstrap.Open(context.Background(), config.Default(), nil, bootstrap.Options{NoStore: true})
	if err != nil {
		t.Fatalf("open deps: %v", err)
	}
	return New(d), d
}

func TestPlanScreen_ToggleMovesTaskToDone(t *testing.T) {
	s, d := newTestScreen(t)
	pending := len(s.tasks())
	if pending == 0 {
		t.Fatal("default plan should have pending tasks")
	}
	doneBefore := d.Board.Progress().Done

	s.Update(tea.KeyPressMsg{Code: tea.KeySpace})

	if got := len(s.tasks()); got != pending-1 {
		t.Errorf("pending tasks = %d, want %d", got, pending-1)
	}
	if got := d.Board.Progress().Done; got != doneBefore+1 {
		t.Errorf("done = %d, want %d", got, doneBefore+1)
	}
	if s.errMsg != "" {
		t.Errorf("unexpected error %q", s.errMsg)
	}
}

func TestPlanScreen_FilterCycles(t *testing.T) {
	s, _ := newTestScreen(t)

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if filters[s.filter] != "done" {
		t.Errorf("filter = %q, want done", filters[s.filter])
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if filters[s.filter] != "all" {
		t.Errorf("filter = %q, want all", filters[s.filter])
	}
}

func TestPlanScreen_View(t *testing.T) {
	s, d := newTestScreen(t)
	view := s.View(100, 40)
	if !strings.Contains(view, d.Board.Plan().Title) {
		t.Error("view should show the plan title")
	}
	if !strings.Contains(view, "待完成") {
		t.Error("view should show the filter tabs")
	}
}
