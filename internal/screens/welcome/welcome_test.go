package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lumi/internal/router"
	"github.com/abhisek/lumi/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

func newTestWelcome(name string) (*WelcomeScreen, *int) {
	calls := 0
	return New(name, func() screen.Screen {
		calls++
		return &stubScreen{}
	}), &calls
}

func sendTicks(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for range n {
		_, cmd = w.Update(tickMsg(time.Now()))
	}
	return cmd
}

func TestGreetingAppearsAfterDelay(t *testing.T) {
	w, _ := newTestWelcome("Mia")

	if strings.Contains(w.View(80, 24), "Hi Mia") {
		t.Error("greeting should not be visible at start")
	}
	sendTicks(w, 15)
	if w.elapsed != greetAt {
		t.Errorf("expected elapsed %v, got %v", greetAt, w.elapsed)
	}
	if !strings.Contains(w.View(80, 24), "Hi Mia! I'm Lumi.") {
		t.Error("greeting should be visible after the mascot animation")
	}
}

func TestGreetingWithoutName(t *testing.T) {
	w, _ := newTestWelcome("")
	sendTicks(w, 20)
	if !strings.Contains(w.View(80, 24), "Hi! I'm Lumi.") {
		t.Error("expected anonymous greeting")
	}
}

func TestKeypressSkipsToNext(t *testing.T) {
	w, calls := newTestWelcome("Mia")
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress should trigger the transition")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen == nil {
		t.Error("replacement screen should not be nil")
	}
	if *calls != 1 {
		t.Errorf("next should be called once, got %d", *calls)
	}
}

func TestAutoTransitionAfterAnimation(t *testing.T) {
	w, calls := newTestWelcome("Mia")

	cmd := sendTicks(w, int(totalDur/tickInterval))
	if cmd == nil {
		t.Fatal("expected a transition command at the end of the animation")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if *calls != 1 {
		t.Errorf("next should be called once, got %d", *calls)
	}
	if w.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, w.elapsed)
	}
}

func TestTransitionHappensOnce(t *testing.T) {
	w, calls := newTestWelcome("Mia")

	w.Update(tea.KeyPressMsg{Code: 'a'})
	if _, cmd := w.Update(tea.KeyPressMsg{Code: 'b'}); cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if cmd := sendTicks(w, 40); cmd != nil {
		t.Error("ticks after the transition should stop")
	}
	if *calls != 1 {
		t.Errorf("next should be called exactly once, got %d", *calls)
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _ := newTestWelcome("Mia")
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}
