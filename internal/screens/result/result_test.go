package result

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lumi/internal/router"
	"github.com/abhisek/lumi/internal/session"
)

func testResult() session.Result {
	return session.Result{Correct: 3, Total: 4, MaxCombo: 2, XPEarned: 30}
}

func testGrid() []Cell {
	return []Cell{
		{Label: "1", Correct: true, Detail: "first"},
		{Label: "2", Correct: false, Detail: "second"},
		{Label: "3", Correct: true, Detail: "third"},
	}
}

func TestResultScreen_Title(t *testing.T) {
	s := New("Daily Conquer", testResult(), Options{})
	if s.Title() != "Daily Conquer" {
		t.Errorf("Title = %q, want %q", s.Title(), "Daily Conquer")
	}
}

func TestResultScreen_Display(t *testing.T) {
	s := New("Quiz", testResult(), Options{ShowXP: true, Details: []string{"2 mistakes mastered"}})
	view := s.View(80, 30)
	for _, want := range []string{"3 / 4 correct", "+30 XP", "Max combo ×2", "2 mistakes mastered"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestResultScreen_HidesXP(t *testing.T) {
	s := New("Quiz", testResult(), Options{})
	if strings.Contains(s.View(80, 30), "XP") {
		t.Error("XP should be hidden unless ShowXP is set")
	}
}

func TestResultScreen_GridNavigation(t *testing.T) {
	s := New("Quiz", testResult(), Options{Grid: testGrid()})

	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if s.cursor != 0 {
		t.Errorf("cursor should clamp at 0, got %d", s.cursor)
	}
	for range 5 {
		s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	}
	if s.cursor != 2 {
		t.Errorf("cursor should clamp at 2, got %d", s.cursor)
	}
	if !strings.Contains(s.View(80, 30), "third") {
		t.Error("selected cell detail should be shown")
	}
}

func TestResultScreen_EnterPops(t *testing.T) {
	s := New("Quiz", testResult(), Options{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestResultScreen_KeyHints(t *testing.T) {
	if n := len(New("Quiz", testResult(), Options{}).KeyHints()); n != 1 {
		t.Errorf("KeyHints length = %d, want 1", n)
	}
	if n := len(New("Quiz", testResult(), Options{Grid: testGrid()}).KeyHints()); n != 2 {
		t.Errorf("KeyHints length with grid = %d, want 2", n)
	}
}
