package conquer

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lumi/internal/bootstrap"
	"github.com/abhisek/lumi/internal/config"
	"github.com/abhisek/lumi/internal/session"
)

func newTestScreen(t *testing.T) (*ConquerScreen, *bootstrap.Deps) {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 7
	d, err := bootstrap.Open(context.Background(), cfg, nil, bootstrap.Options{NoStore: true})
	if err != nil {
		t.Fatalf("open deps: %v", err)
	}
	return New(d), d
}

func enter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }

// playToDebrief answers every question correctly.
func playToDebrief(t *testing.T, s *ConquerScreen) {
	t.Helper()
	s.Update(enter())
	if s.run.Stage() != session.StageActive {
		t.Fatalf("stage = %s, want active", s.run.Stage())
	}
	for {
		q, _, err := s.run.Current()
		if err != nil {
			t.Fatal(err)
		}
		s.run.Answer(q.Correct[0])
		if s.run.Next() {
			break
		}
	}
	if s.run.Stage() != session.StageDebrief {
		t.Fatalf("stage = %s, want debrief", s.run.Stage())
	}
}

func TestConquerScreen_DebriefWaitsForClaim(t *testing.T) {
	s, d := newTestScreen(t)
	pending := d.Vault.Vault.PendingCount()
	wallet := d.Rewards.Wallet()

	playToDebrief(t, s)

	if got := d.Vault.Vault.PendingCount(); got != pending {
		t.Errorf("pending = %d before claiming, want %d", got, pending)
	}
	if w := d.Rewards.Wallet(); w.Level != wallet.Level || w.LevelXP != wallet.LevelXP {
		t.Error("wallet changed before claiming")
	}
	view := s.View(100, 40)
	if !strings.Contains(view, "领取奖励并返回") {
		t.Error("debrief should offer the claim button")
	}

	s.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if d.Vault.Vault.PendingCount() != pending {
		t.Error("only Enter claims the reward")
	}

	_, cmd := s.Update(enter())
	if cmd == nil {
		t.Fatal("claim should navigate to the result")
	}
	if got := d.Vault.Vault.PendingCount(); got != 0 {
		t.Errorf("pending = %d after claiming, want 0", got)
	}
	claimed := d.Rewards.Wallet()
	if claimed.Level == wallet.Level && claimed.LevelXP == wallet.LevelXP {
		t.Error("claim should credit XP")
	}

	if _, cmd := s.Update(enter()); cmd != nil {
		t.Error("second Enter should do nothing")
	}
	if w := d.Rewards.Wallet(); w.Level != claimed.Level || w.LevelXP != claimed.LevelXP {
		t.Error("reward must be claimed once")
	}
}

func TestConquerScreen_DebriefKeyHints(t *testing.T) {
	s, _ := newTestScreen(t)
	playToDebrief(t, s)

	var descs []string
	for _, h := range s.KeyHints() {
		descs = append(descs, h.Description)
	}
	joined := strings.Join(descs, ",")
	if !strings.Contains(joined, "Claim reward") || !strings.Contains(joined, "Leave without claiming") {
		t.Errorf("hints = %q", joined)
	}
}
