package history

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lumi/internal/bootstrap"
	"github.com/abhisek/lumi/internal/config"
	"github.com/abhisek/lumi/internal/session"
	"github.com/abhisek/lumi/internal/subject"
)

func openDeps(t *testing.T, withStore bool) *bootstrap.Deps {
	t.Helper()
	cfg := config.Default()
	cfg.DB = filepath.Join(t.TempDir(), "lumi.db")
	d, err := bootstrap.Open(context.Background(), cfg, nil, bootstrap.Options{NoStore: !withStore})
	if err != nil {
		t.Fatalf("open deps: %v", err)
	}
	t.Cleanup(func() { d.Close(context.Background()) })
	return d
}

func TestHistoryWithoutStore(t *testing.T) {
	s := New(openDeps(t, false))
	if cmd := s.Init(); cmd != nil {
		t.Error("expected no load command without a store")
	}
	if !strings.Contains(s.View(100, 30), "No sessions yet") {
		t.Error("expected empty state")
	}
}

func TestHistoryListsSessionsAndRewards(t *testing.T) {
	ctx := context.Background()
	d := openDeps(t, true)
	d.RecordQuiz(ctx, subject.Math, session.Result{SessionID: "run-1", Correct: 4, Total: 5, MaxCombo: 3, XPEarned: 40})
	d.Rewards.Credit(ctx, 40, 0, "quiz")

	s := New(d)
	s.Update(s.load())
	if !s.loaded || s.errMsg != "" {
		t.Fatalf("load failed: %q", s.errMsg)
	}
	if len(s.sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(s.sessions))
	}

	view := s.View(100, 30)
	for _, want := range []string{"Quiz", "4/5", "80%", "+40 XP"} {
		if !strings.Contains(view, want) {
			t.Errorf("sessions view missing %q", want)
		}
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(100, 30), "max combo ×3") {
		t.Error("enter should expand the session details")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.tab != tabRewards {
		t.Fatalf("tab = %d, want rewards", s.tab)
	}
	if !strings.Contains(s.View(100, 30), "+40") {
		t.Error("rewards view should list the XP credit")
	}
}
